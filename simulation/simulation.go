// Package simulation composes the pieces of one simulation run: the engine,
// the data recorder, and the monitor.
package simulation

import (
	"github.com/famlab/dynasty/datarecording"
	"github.com/famlab/dynasty/monitoring"
	"github.com/famlab/dynasty/sim"
)

const (
	snapshotTable = "snapshots"
	peopleTable   = "people"
)

// personRow is the flat lineage record persisted for every person at the end
// of a run.
type personRow struct {
	ID              string
	BirthYear       int
	Status          string
	StatusSince     int
	ParentID        string
	Generation      int
	ProbationLength int
}

// snapshotRecordHook persists every snapshot the engine emits.
type snapshotRecordHook struct {
	recorder datarecording.DataRecorder
}

func (h *snapshotRecordHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterYear {
		return
	}

	h.recorder.InsertData(snapshotTable, ctx.Item.(sim.Snapshot))
}

// A Simulation provides the services required to run one scenario.
type Simulation struct {
	id           string
	engine       *sim.SerialEngine
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine used in the simulation.
func (s *Simulation) Engine() *sim.SerialEngine {
	return s.engine
}

// DataRecorder returns the data recorder used in the simulation.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor used in the simulation, or nil when
// monitoring is disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Run advances the engine over its full horizon, records the lineage of
// everyone ever created, and returns the snapshot series.
func (s *Simulation) Run() ([]sim.Snapshot, error) {
	series, err := s.engine.Run()
	if err != nil {
		return nil, err
	}

	s.recordPeople()
	s.dataRecorder.Flush()

	return series, nil
}

func (s *Simulation) recordPeople() {
	for _, p := range s.engine.People() {
		s.dataRecorder.InsertData(peopleTable, personRow{
			ID:              p.ID,
			BirthYear:       p.BirthYear,
			Status:          p.Status.String(),
			StatusSince:     p.StatusSince,
			ParentID:        p.ParentID,
			Generation:      p.Generation,
			ProbationLength: p.ProbationLength,
		})
	}
}

// Terminate terminates the simulation.
func (s *Simulation) Terminate() {
	s.dataRecorder.Close()
}
