package sim

import (
	"strconv"

	"github.com/rs/xid"
)

// IDGenerator assigns identifiers to people. Each engine owns its own
// generator so that independent runs never share mutable state.
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

// NewSequentialIDGenerator creates a generator that numbers people in
// creation order. It is the default, as it keeps IDs deterministic across
// runs with the same configuration.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewXIDGenerator creates a generator backed by xid. The IDs are globally
// unique across processes but not deterministic; use it only when snapshots
// from multiple runs land in one shared store.
func NewXIDGenerator() IDGenerator {
	return xidGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	g.nextID++
	return strconv.FormatUint(g.nextID, 10)
}

type xidGenerator struct{}

func (g xidGenerator) Generate() string {
	return xid.New().String()
}
