package sim

import "fmt"

// InvitationAge is the one age at which a candidate is checked for
// invitation. A candidate that passes this age without an invitation departs
// and never gets a second chance.
const InvitationAge = 26

// A Config holds all tunable parameters of a run. It is validated once
// before the engine starts and is never mutated afterwards.
type Config struct {
	StartYear    int
	HorizonYears int

	// Seed fixes the pseudo-random stream. Two runs with the same Config,
	// including the seed, produce bit-identical snapshot series.
	Seed int64

	// FertilityMean is the mean of the Poisson birth-count draw performed
	// each year for every partner or emeritus whose age lies in
	// [FertilityAgeStart, FertilityAgeEnd].
	FertilityMean     float64
	FertilityAgeStart int
	FertilityAgeEnd   int

	// InviteProb is the Bernoulli probability that an eligible 26-year-old
	// candidate is invited as a trainee.
	InviteProb float64

	// PromotionProb is the Bernoulli probability that a trainee whose
	// probation has elapsed is promoted to partner.
	PromotionProb float64

	// Probation lengths are drawn uniformly from [ProbationMin,
	// ProbationMax] when a trainee is created.
	ProbationMin int
	ProbationMax int

	// AgePartnerToEmeritus is the age at which an active partner retires to
	// emeritus. AgeEconRightsEnd is the age at which an emeritus partner's
	// economic rights expire and the person departs. AgeEconRightsEnd is
	// expected to be >= AgePartnerToEmeritus; the reverse still validates
	// but produces zero-duration economic rights.
	AgePartnerToEmeritus int
	AgeEconRightsEnd     int

	// EligibleParentStatus lists the parent statuses that qualify a
	// 26-year-old candidate for the invitation trial.
	EligibleParentStatus []Status

	InitialActivePartners   int
	InitialEmeritusPartners int
	InitialTrainees         int
}

// DefaultConfig returns the parameter set the simulator ships with.
func DefaultConfig() Config {
	return Config{
		StartYear:    2025,
		HorizonYears: 100,
		Seed:         42,

		FertilityMean:     1.6,
		FertilityAgeStart: 28,
		FertilityAgeEnd:   42,

		InviteProb:    0.6,
		PromotionProb: 0.7,
		ProbationMin:  6,
		ProbationMax:  9,

		AgePartnerToEmeritus: 55,
		AgeEconRightsEnd:     65,

		EligibleParentStatus: []Status{StatusPartner, StatusEmeritus},

		InitialActivePartners:   30,
		InitialEmeritusPartners: 30,
		InitialTrainees:         10,
	}
}

// Validate checks every parameter bound. It returns a *ConfigError naming
// the first violated field, or nil.
func (c Config) Validate() error {
	if err := c.validateRanges(); err != nil {
		return err
	}

	if err := c.validateOrderings(); err != nil {
		return err
	}

	return c.validateParentStatusSet()
}

func (c Config) validateRanges() error {
	if c.HorizonYears <= 0 {
		return outOfRange("HorizonYears", "must be positive")
	}

	if c.FertilityMean < 0 {
		return outOfRange("FertilityMean", "must be non-negative")
	}

	if c.InviteProb < 0 || c.InviteProb > 1 {
		return outOfRange("InviteProb", "must lie in [0, 1]")
	}

	if c.PromotionProb < 0 || c.PromotionProb > 1 {
		return outOfRange("PromotionProb", "must lie in [0, 1]")
	}

	if c.ProbationMin <= 0 || c.ProbationMax <= 0 {
		return outOfRange("ProbationMin", "probation bounds must be positive")
	}

	if c.AgePartnerToEmeritus <= 0 {
		return outOfRange("AgePartnerToEmeritus", "must be positive")
	}

	if c.AgeEconRightsEnd <= 0 {
		return outOfRange("AgeEconRightsEnd", "must be positive")
	}

	if c.InitialActivePartners < 0 ||
		c.InitialEmeritusPartners < 0 ||
		c.InitialTrainees < 0 {
		return outOfRange("InitialPopulation",
			"initial population sizes must be non-negative")
	}

	return nil
}

func (c Config) validateOrderings() error {
	if c.FertilityAgeStart >= c.FertilityAgeEnd {
		return &ConfigError{
			Kind:   ConfigErrInvalidOrdering,
			Field:  "FertilityAgeStart",
			Reason: "FertilityAgeStart must be less than FertilityAgeEnd",
		}
	}

	if c.ProbationMin > c.ProbationMax {
		return &ConfigError{
			Kind:   ConfigErrInvalidOrdering,
			Field:  "ProbationMin",
			Reason: "ProbationMin must not exceed ProbationMax",
		}
	}

	return nil
}

func (c Config) validateParentStatusSet() error {
	if len(c.EligibleParentStatus) == 0 {
		return &ConfigError{
			Kind:   ConfigErrEmptySet,
			Field:  "EligibleParentStatus",
			Reason: "at least one eligible parent status is required",
		}
	}

	for _, s := range c.EligibleParentStatus {
		switch s {
		case StatusTrainee, StatusPartner, StatusEmeritus:
		default:
			return outOfRange("EligibleParentStatus",
				fmt.Sprintf("status %s cannot qualify a parent", s))
		}
	}

	return nil
}

func outOfRange(field, reason string) *ConfigError {
	return &ConfigError{
		Kind:   ConfigErrOutOfRange,
		Field:  field,
		Reason: reason,
	}
}
