package sim

// Status is the lifecycle position of a person in the partnership pipeline.
// Transitions only move forward along the Candidate -> Trainee -> Partner ->
// Emeritus -> Departed order. Not every status is visited: a released
// trainee, for example, jumps straight to Departed.
type Status int

// The statuses a person can hold. The declaration order is the lifecycle
// order.
const (
	StatusCandidate Status = iota
	StatusTrainee
	StatusPartner
	StatusEmeritus
	StatusDeparted
)

var statusNames = map[Status]string{
	StatusCandidate: "Candidate",
	StatusTrainee:   "Trainee",
	StatusPartner:   "Partner",
	StatusEmeritus:  "Emeritus",
	StatusDeparted:  "Departed",
}

func (s Status) String() string {
	name, ok := statusNames[s]
	if !ok {
		return "Unknown"
	}

	return name
}

// Follows returns true if moving from prev to s keeps the lifecycle order.
func (s Status) Follows(prev Status) bool {
	return s >= prev
}
