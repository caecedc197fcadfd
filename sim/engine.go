package sim

// YearTeller can be used to get the current simulated year.
type YearTeller interface {
	CurrentYear() int
}

// An Engine is a unit that advances a partnership population through
// discrete yearly steps.
type Engine interface {
	Hookable
	YearTeller

	// Run advances the population for the configured horizon and returns
	// one snapshot per simulated year. It can only be called once per
	// engine.
	Run() ([]Snapshot, error)

	// Series returns the snapshots emitted so far.
	Series() []Snapshot

	// Config returns the configuration the engine was constructed from.
	Config() Config
}
