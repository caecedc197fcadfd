package sim

// A Person is one individual tracked by the simulation.
type Person struct {
	// ID is assigned at creation and stays stable for the person's lifetime.
	ID string

	// BirthYear is fixed at creation. Age is always derived from it, never
	// stored.
	BirthYear int

	Status Status

	// StatusSince is the year the current status began.
	StatusSince int

	// ParentID names the person whose fertility event produced this one. It
	// is empty for seed members of the initial population.
	ParentID string

	// Generation counts lineage depth. Seed members are generation 0.
	Generation int

	// ProbationLength is drawn once when the person becomes a trainee and is
	// fixed until the promotion/release decision.
	ProbationLength int
}

// Age returns the person's age at the given year.
func (p *Person) Age(year int) int {
	return year - p.BirthYear
}

// A Population is the complete set of people in one simulation run. It is
// owned exclusively by the engine and keeps people in creation order so that
// iterating it yields a reproducible draw order.
type Population struct {
	people []*Person
	byID   map[string]*Person
}

// NewPopulation creates an empty population.
func NewPopulation() *Population {
	return &Population{
		byID: make(map[string]*Person),
	}
}

// Add appends a person to the population.
func (pop *Population) Add(p *Person) {
	if _, exists := pop.byID[p.ID]; exists {
		panic("person " + p.ID + " already in population")
	}

	pop.people = append(pop.people, p)
	pop.byID[p.ID] = p
}

// ByID returns the person with the given ID, or nil.
func (pop *Population) ByID(id string) *Person {
	return pop.byID[id]
}

// All returns the people in creation order. The slice is shared with the
// population; callers must not reorder it.
func (pop *Population) All() []*Person {
	return pop.people
}

// Len returns the number of people ever created, including departed ones.
func (pop *Population) Len() int {
	return len(pop.people)
}

// CountByStatus tallies people per status.
func (pop *Population) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, p := range pop.people {
		counts[p.Status]++
	}

	return counts
}
