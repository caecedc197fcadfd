package simulation

import (
	"github.com/rs/xid"

	"github.com/famlab/dynasty/datarecording"
	"github.com/famlab/dynasty/monitoring"
	"github.com/famlab/dynasty/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	cfg            sim.Config
	monitorOn      bool
	monitorPort    int
	launchBrowser  bool
	outputFileName string
}

// MakeBuilder creates a new builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg:       sim.DefaultConfig(),
		monitorOn: true,
	}
}

// WithConfig sets the configuration of the run.
func (b Builder) WithConfig(cfg sim.Config) Builder {
	b.cfg = cfg
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowserLaunch makes the monitor open its dashboard in the default
// browser.
func (b Builder) WithBrowserLaunch() Builder {
	b.launchBrowser = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.launchBrowser {
		panic("browser launch requires monitoring")
	}
}

// Build builds the simulation. It returns a *sim.ConfigError if the
// configuration does not validate.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	engine, err := sim.NewSerialEngine(b.cfg)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		id:     xid.New().String(),
		engine: engine,
	}

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "dynasty_sim_" + s.id
	}
	s.dataRecorder = datarecording.New(outputPath)

	s.dataRecorder.CreateTable(snapshotTable, sim.Snapshot{})
	s.dataRecorder.CreateTable(peopleTable, personRow{})
	engine.AcceptHook(&snapshotRecordHook{recorder: s.dataRecorder})

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		if b.launchBrowser {
			s.monitor.WithBrowserLaunch()
		}
		s.monitor.RegisterEngine(engine)
		s.monitor.StartServer()
	}

	return s, nil
}
