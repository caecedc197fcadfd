package sim

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

// transitionRecord captures one status change observed through the
// transition hook.
type transitionRecord struct {
	id   string
	from Status
	to   Status
	year int
}

type recordingHook struct {
	records []transitionRecord
}

func (h *recordingHook) Func(ctx HookCtx) {
	if ctx.Pos != HookPosTransition {
		return
	}

	p := ctx.Item.(*Person)
	from := ctx.Detail.(Status)

	h.records = append(h.records, transitionRecord{
		id:   p.ID,
		from: from,
		to:   p.Status,
		year: p.StatusSince,
	})
}

var _ = Describe("SerialEngine", func() {
	It("should refuse an invalid configuration", func() {
		cfg := DefaultConfig()
		cfg.HorizonYears = 0

		engine, err := NewSerialEngine(cfg)

		Expect(engine).To(BeNil())
		Expect(err).To(BeAssignableToTypeOf(&ConfigError{}))
	})

	It("should fail a run on a zero-value engine", func() {
		engine := &SerialEngine{}

		series, err := engine.Run()

		Expect(series).To(BeNil())
		Expect(err).To(BeAssignableToTypeOf(&EngineError{}))
		Expect(err.(*EngineError).Kind).To(Equal(EngineErrNotConfigured))
	})

	It("should fail the second run on the same engine", func() {
		engine, err := NewSerialEngine(DefaultConfig())
		Expect(err).ToNot(HaveOccurred())

		_, err = engine.Run()
		Expect(err).ToNot(HaveOccurred())

		_, err = engine.Run()
		Expect(err).To(BeAssignableToTypeOf(&EngineError{}))
		Expect(err.(*EngineError).Kind).To(Equal(EngineErrAlreadyRun))
	})

	It("should let exactly one of two concurrent runs proceed", func() {
		engine, err := NewSerialEngine(DefaultConfig())
		Expect(err).ToNot(HaveOccurred())

		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()

				_, err := engine.Run()
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var failed []error
		for err := range errs {
			if err != nil {
				failed = append(failed, err)
			}
		}

		Expect(failed).To(HaveLen(1))
		Expect(failed[0]).To(BeAssignableToTypeOf(&EngineError{}))
		Expect(failed[0].(*EngineError).Kind).To(Equal(EngineErrAlreadyRun))
	})

	It("should produce bit-identical series for the same configuration",
		func() {
			cfg := DefaultConfig()

			engine1, err := NewSerialEngine(cfg)
			Expect(err).ToNot(HaveOccurred())
			engine2, err := NewSerialEngine(cfg)
			Expect(err).ToNot(HaveOccurred())

			series1, err := engine1.Run()
			Expect(err).ToNot(HaveOccurred())
			series2, err := engine2.Run()
			Expect(err).ToNot(HaveOccurred())

			Expect(series1).To(Equal(series2))
		})

	It("should diverge for different seeds", func() {
		cfg1 := DefaultConfig()
		cfg2 := DefaultConfig()
		cfg2.Seed = 43

		engine1, _ := NewSerialEngine(cfg1)
		engine2, _ := NewSerialEngine(cfg2)

		series1, _ := engine1.Run()
		series2, _ := engine2.Run()

		Expect(series1).ToNot(Equal(series2))
	})

	It("should emit one snapshot per year over the horizon", func() {
		cfg := DefaultConfig()
		cfg.StartYear = 2020
		cfg.HorizonYears = 37

		engine, _ := NewSerialEngine(cfg)
		series, err := engine.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(series).To(HaveLen(37))
		for i, snapshot := range series {
			Expect(snapshot.Year).To(Equal(2020 + i))
		}
	})

	It("should never let a person regress along the lifecycle", func() {
		cfg := DefaultConfig()
		cfg.HorizonYears = 60

		engine, _ := NewSerialEngine(cfg)
		hook := &recordingHook{}
		engine.AcceptHook(hook)

		_, err := engine.Run()
		Expect(err).ToNot(HaveOccurred())

		lastStatus := make(map[string]Status)
		for _, r := range hook.records {
			Expect(r.to.Follows(r.from)).To(BeTrue())

			if prev, seen := lastStatus[r.id]; seen {
				Expect(r.from.Follows(prev)).To(BeTrue())
			}
			lastStatus[r.id] = r.to
		}
	})

	It("should drain the pipeline when invitations never succeed", func() {
		cfg := DefaultConfig()
		cfg.InviteProb = 0
		cfg.HorizonYears = 100

		engine, _ := NewSerialEngine(cfg)
		hook := &recordingHook{}
		engine.AcceptHook(hook)

		series, err := engine.Run()
		Expect(err).ToNot(HaveOccurred())

		for _, r := range hook.records {
			Expect(r.to == StatusTrainee && r.from == StatusCandidate).
				To(BeFalse())
		}

		final := series[len(series)-1]
		Expect(final.Trainees).To(Equal(0))
		Expect(final.Partners).To(Equal(0))
		Expect(final.Emeriti).To(Equal(0))
	})

	It("should decide every trainee within the probation bounds", func() {
		cfg := DefaultConfig()
		cfg.HorizonYears = 80

		engine, _ := NewSerialEngine(cfg)
		hook := &recordingHook{}
		engine.AcceptHook(hook)

		_, err := engine.Run()
		Expect(err).ToNot(HaveOccurred())

		traineeSince := make(map[string]int)
		for _, r := range hook.records {
			if r.to == StatusTrainee {
				traineeSince[r.id] = r.year
				continue
			}

			if r.from != StatusTrainee {
				continue
			}

			start, seen := traineeSince[r.id]
			if !seen {
				// Seed trainees start before the hook can observe them.
				continue
			}

			tenure := r.year - start
			Expect(tenure).To(BeNumerically(">=", cfg.ProbationMin))
			Expect(tenure).To(BeNumerically("<=", cfg.ProbationMax))
		}
	})

	It("should reproduce the frozen-pipeline scenario", func() {
		cfg := Config{
			StartYear:    2020,
			HorizonYears: 3,
			Seed:         42,

			FertilityMean:     0,
			FertilityAgeStart: 28,
			FertilityAgeEnd:   42,

			InviteProb:    0,
			PromotionProb: 0,
			ProbationMin:  1,
			ProbationMax:  1,

			AgePartnerToEmeritus: 150,
			AgeEconRightsEnd:     200,

			EligibleParentStatus: []Status{StatusPartner, StatusEmeritus},

			InitialActivePartners:   5,
			InitialEmeritusPartners: 2,
			InitialTrainees:         1,
		}

		engine, err := NewSerialEngine(cfg)
		Expect(err).ToNot(HaveOccurred())

		series, err := engine.Run()
		Expect(err).ToNot(HaveOccurred())
		Expect(series).To(HaveLen(3))

		for i, snapshot := range series {
			Expect(snapshot.Year).To(Equal(2020 + i))
			Expect(snapshot.Partners).To(Equal(5))
			Expect(snapshot.Emeriti).To(Equal(2))
		}

		// probation_max of one year forces the release decision, and a zero
		// promotion probability guarantees release.
		Expect(series[0].Trainees).To(Equal(1))
		Expect(series[1].Trainees).To(Equal(0))
		Expect(series[2].Trainees).To(Equal(0))
	})

	It("should track lineage through fertility events", func() {
		cfg := DefaultConfig()
		cfg.HorizonYears = 10

		engine, _ := NewSerialEngine(cfg)
		_, err := engine.Run()
		Expect(err).ToNot(HaveOccurred())

		seen := make(map[string]bool)
		for _, p := range engine.People() {
			Expect(seen[p.ID]).To(BeFalse())
			seen[p.ID] = true

			if p.ParentID == "" {
				Expect(p.Generation).To(Equal(0))
				continue
			}

			parent := engine.population.ByID(p.ParentID)
			Expect(parent).ToNot(BeNil())
			Expect(p.Generation).To(Equal(parent.Generation + 1))
		}
	})

	It("should invoke year hooks around every step", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		cfg := DefaultConfig()
		cfg.HorizonYears = 2
		cfg.FertilityMean = 0
		cfg.InitialActivePartners = 0
		cfg.InitialEmeritusPartners = 0
		cfg.InitialTrainees = 0

		engine, _ := NewSerialEngine(cfg)

		hook := NewMockHook(mockCtrl)
		positions := []*HookPos{}
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			positions = append(positions, ctx.Pos)
		}).Times(4)
		engine.AcceptHook(hook)

		_, err := engine.Run()
		Expect(err).ToNot(HaveOccurred())

		Expect(positions).To(Equal([]*HookPos{
			HookPosBeforeYear, HookPosAfterYear,
			HookPosBeforeYear, HookPosAfterYear,
		}))
	})
})
