package sim

import (
	"log"
	"sync"
)

// Seed members of the initial population have no recorded birth year, so
// they get fixed synthetic ages: active partners are mid-career, trainees
// are two years past the invitation age, and emeritus partners are taken to
// have just retired at the configured threshold. Ages are never drawn; the
// bootstrap's only stream draws are the seed trainees' probation lengths.
const (
	seedPartnerAge = 40
	seedTraineeAge = 28
)

// A SerialEngine advances one population year by year, always in the same
// rule order, drawing from a single seeded stream. Two engines built from
// the same configuration emit bit-identical snapshot series.
type SerialEngine struct {
	HookableBase

	cfg        Config
	configured bool
	src        *Source
	ids        IDGenerator
	population *Population
	eligible   map[Status]bool

	yearLock sync.RWMutex
	year     int
	series   []Snapshot

	runLock sync.Mutex
	hasRun  bool
}

// NewSerialEngine validates the configuration, seeds the random stream, and
// builds the initial population. It returns a *ConfigError if any parameter
// bound is violated.
func NewSerialEngine(cfg Config) (*SerialEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &SerialEngine{
		cfg:        cfg,
		configured: true,
		src:        NewSource(cfg.Seed),
		ids:        NewSequentialIDGenerator(),
		population: NewPopulation(),
		eligible:   make(map[Status]bool),
		year:       cfg.StartYear,
	}

	for _, s := range cfg.EligibleParentStatus {
		e.eligible[s] = true
	}

	e.seedInitialPopulation()

	return e, nil
}

func (e *SerialEngine) seedInitialPopulation() {
	startYear := e.cfg.StartYear

	for i := 0; i < e.cfg.InitialActivePartners; i++ {
		e.population.Add(&Person{
			ID:          e.ids.Generate(),
			BirthYear:   startYear - seedPartnerAge,
			Status:      StatusPartner,
			StatusSince: startYear,
		})
	}

	for i := 0; i < e.cfg.InitialEmeritusPartners; i++ {
		e.population.Add(&Person{
			ID:          e.ids.Generate(),
			BirthYear:   startYear - e.cfg.AgePartnerToEmeritus,
			Status:      StatusEmeritus,
			StatusSince: startYear,
		})
	}

	for i := 0; i < e.cfg.InitialTrainees; i++ {
		e.population.Add(&Person{
			ID:          e.ids.Generate(),
			BirthYear:   startYear - seedTraineeAge,
			Status:      StatusTrainee,
			StatusSince: startYear,
			ProbationLength: e.src.UniformInt(
				e.cfg.ProbationMin, e.cfg.ProbationMax),
		})
	}
}

// Run advances the population for the configured horizon. It returns one
// snapshot per simulated year, in year order.
func (e *SerialEngine) Run() ([]Snapshot, error) {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	if !e.configured {
		return nil, &EngineError{Kind: EngineErrNotConfigured}
	}

	if e.hasRun {
		return nil, &EngineError{Kind: EngineErrAlreadyRun}
	}
	e.hasRun = true

	for i := 0; i < e.cfg.HorizonYears; i++ {
		e.writeYear(e.cfg.StartYear + i)
		e.stepYear()
	}

	return e.Series(), nil
}

// stepYear applies the transition rules in their fixed order. Later rules
// see the results of earlier ones: a candidate invited this year becomes a
// trainee with zero tenure and cannot be promoted in the same year, since
// probation lengths are positive.
func (e *SerialEngine) stepYear() {
	year := e.CurrentYear()

	e.InvokeHook(HookCtx{Domain: e, Pos: HookPosBeforeYear, Item: year})

	e.applyFertility(year)
	e.applyInvitations(year)
	e.applyPromotions(year)
	e.retirePartners(year)
	e.expireEconRights(year)

	snapshot := e.takeSnapshot(year)

	e.InvokeHook(HookCtx{Domain: e, Pos: HookPosAfterYear, Item: snapshot})
}

func (e *SerialEngine) applyFertility(year int) {
	// Children born this year must not be scanned themselves.
	existing := e.population.Len()

	for _, p := range e.population.All()[:existing] {
		if p.Status != StatusPartner && p.Status != StatusEmeritus {
			continue
		}

		age := p.Age(year)
		if age < e.cfg.FertilityAgeStart || age > e.cfg.FertilityAgeEnd {
			continue
		}

		births := e.src.Poisson(e.cfg.FertilityMean)
		for b := 0; b < births; b++ {
			e.addChild(p, year)
		}
	}
}

func (e *SerialEngine) addChild(parent *Person, year int) {
	e.population.Add(&Person{
		ID:          e.ids.Generate(),
		BirthYear:   year,
		Status:      StatusCandidate,
		StatusSince: year,
		ParentID:    parent.ID,
		Generation:  parent.Generation + 1,
	})
}

func (e *SerialEngine) applyInvitations(year int) {
	for _, p := range e.population.All() {
		if p.Status != StatusCandidate {
			continue
		}

		age := p.Age(year)
		if age < InvitationAge {
			continue
		}

		if age > InvitationAge {
			// Missed the one-time window.
			e.transition(p, StatusDeparted, year)
			continue
		}

		if !e.parentEligible(p) {
			e.transition(p, StatusDeparted, year)
			continue
		}

		if e.src.Bernoulli(e.cfg.InviteProb) {
			p.ProbationLength = e.src.UniformInt(
				e.cfg.ProbationMin, e.cfg.ProbationMax)
			e.transition(p, StatusTrainee, year)
		} else {
			e.transition(p, StatusDeparted, year)
		}
	}
}

// parentEligible checks the parent's status at evaluation time, not at the
// candidate's birth. People without a parent record are treated as eligible.
func (e *SerialEngine) parentEligible(p *Person) bool {
	if p.ParentID == "" {
		return true
	}

	parent := e.population.ByID(p.ParentID)
	if parent == nil {
		return true
	}

	return e.eligible[parent.Status]
}

func (e *SerialEngine) applyPromotions(year int) {
	for _, p := range e.population.All() {
		if p.Status != StatusTrainee {
			continue
		}

		tenure := year - p.StatusSince
		if tenure < p.ProbationLength {
			continue
		}

		if e.src.Bernoulli(e.cfg.PromotionProb) {
			e.transition(p, StatusPartner, year)
		} else {
			e.transition(p, StatusDeparted, year)
		}
	}
}

func (e *SerialEngine) retirePartners(year int) {
	for _, p := range e.population.All() {
		if p.Status != StatusPartner {
			continue
		}

		if p.Age(year) >= e.cfg.AgePartnerToEmeritus {
			e.transition(p, StatusEmeritus, year)
		}
	}
}

func (e *SerialEngine) expireEconRights(year int) {
	for _, p := range e.population.All() {
		if p.Status != StatusEmeritus {
			continue
		}

		if p.Age(year) >= e.cfg.AgeEconRightsEnd {
			e.transition(p, StatusDeparted, year)
		}
	}
}

func (e *SerialEngine) transition(p *Person, to Status, year int) {
	from := p.Status
	if !to.Follows(from) {
		log.Panicf("person %s cannot move from %s back to %s",
			p.ID, from, to)
	}

	p.Status = to
	p.StatusSince = year

	e.InvokeHook(HookCtx{
		Domain: e,
		Pos:    HookPosTransition,
		Item:   p,
		Detail: from,
	})
}

func (e *SerialEngine) takeSnapshot(year int) Snapshot {
	counts := e.population.CountByStatus()

	snapshot := Snapshot{
		Year:     year,
		Trainees: counts[StatusTrainee],
		Partners: counts[StatusPartner],
		Emeriti:  counts[StatusEmeritus],
		Departed: counts[StatusDeparted],
	}

	e.yearLock.Lock()
	e.series = append(e.series, snapshot)
	e.yearLock.Unlock()

	return snapshot
}

// CurrentYear returns the year the engine is at.
func (e *SerialEngine) CurrentYear() int {
	e.yearLock.RLock()
	defer e.yearLock.RUnlock()

	return e.year
}

func (e *SerialEngine) writeYear(year int) {
	e.yearLock.Lock()
	e.year = year
	e.yearLock.Unlock()
}

// Series returns a copy of the snapshots emitted so far.
func (e *SerialEngine) Series() []Snapshot {
	e.yearLock.RLock()
	defer e.yearLock.RUnlock()

	series := make([]Snapshot, len(e.series))
	copy(series, e.series)

	return series
}

// Config returns the configuration the engine was constructed from.
func (e *SerialEngine) Config() Config {
	return e.cfg
}

// People returns everyone ever created during the run, in creation order,
// including departed members. The engine stays the sole mutator; callers
// must treat the result as read-only.
func (e *SerialEngine) People() []*Person {
	return e.population.All()
}
