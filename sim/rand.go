package sim

import (
	"math"
	"math/rand"
)

// A Source produces every stochastic draw of one simulation run. It wraps a
// single seeded stream that is owned exclusively by one engine instance, so
// independent engines can run in parallel without sharing state.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a source seeded with the given value.
func NewSource(seed int64) *Source {
	return &Source{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Bernoulli performs one trial with success probability p.
func (s *Source) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}

// UniformInt draws an integer uniformly from [low, high], inclusive on both
// ends.
func (s *Source) UniformInt(low, high int) int {
	if low > high {
		panic("uniform draw with low > high")
	}

	return low + s.rng.Intn(high-low+1)
}

// Poisson draws a Poisson-distributed count with the given mean, using
// Knuth's multiplication method. A non-positive mean yields zero without
// consuming the stream.
func (s *Source) Poisson(mean float64) int {
	if mean <= 0 {
		return 0
	}

	limit := math.Exp(-mean)
	count := 0
	product := 1.0

	for {
		product *= s.rng.Float64()
		if product <= limit {
			return count
		}

		count++
	}
}
