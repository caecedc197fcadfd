package sim

// A Snapshot is the per-year aggregate the simulation publishes. Candidates
// are internal bookkeeping and stay out of the published counts; Departed is
// exposed as a cumulative count for attrition analysis.
type Snapshot struct {
	Year     int
	Trainees int
	Partners int
	Emeriti  int
	Departed int
}

// Counts returns the snapshot as a status-name-to-count mapping, the shape
// chart consumers work with.
func (s Snapshot) Counts() map[string]int {
	return map[string]int{
		StatusTrainee.String():  s.Trainees,
		StatusPartner.String():  s.Partners,
		StatusEmeritus.String(): s.Emeriti,
		StatusDeparted.String(): s.Departed,
	}
}
