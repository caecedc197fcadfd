package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/famlab/dynasty/sim"
)

var _ = Describe("Monitor", func() {
	var (
		m      *Monitor
		engine *sim.SerialEngine
	)

	BeforeEach(func() {
		m = NewMonitor()

		cfg := sim.DefaultConfig()
		cfg.HorizonYears = 5

		var err error
		engine, err = sim.NewSerialEngine(cfg)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should track year progress through the engine hook", func() {
		m.RegisterEngine(engine)
		Expect(m.progressBars).To(HaveLen(1))
		Expect(m.progressBars[0].Total).To(Equal(uint64(5)))

		_, err := engine.Run()
		Expect(err).ToNot(HaveOccurred())

		Expect(m.progressBars[0].Finished).To(Equal(uint64(5)))
	})

	It("should remove completed progress bars", func() {
		bar := m.CreateProgressBar("warmup", 10)
		Expect(m.progressBars).To(HaveLen(1))

		m.CompleteProgressBar(bar)
		Expect(m.progressBars).To(BeEmpty())
	})

	It("should report the current year", func() {
		m.RegisterEngine(engine)

		recorder := httptest.NewRecorder()
		m.now(recorder, nil)

		Expect(recorder.Body.String()).To(Equal("{\"year\":2025}"))
	})

	It("should serve the snapshot series", func() {
		m.RegisterEngine(engine)

		_, err := engine.Run()
		Expect(err).ToNot(HaveOccurred())

		recorder := httptest.NewRecorder()
		m.series(recorder, nil)

		var series []sim.Snapshot
		Expect(json.Unmarshal(recorder.Body.Bytes(), &series)).To(Succeed())
		Expect(series).To(HaveLen(5))
	})
})
