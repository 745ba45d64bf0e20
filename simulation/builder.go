package simulation

import (
	"log"

	"github.com/rs/xid"

	"github.com/pdqlab/pdqcore/datarecording"
	"github.com/pdqlab/pdqcore/monitoring"
	"github.com/pdqlab/pdqcore/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	recordOn       bool
	outputFileName string
	traceLogger    *log.Logger
	freq           sim.Freq
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn: true,
		recordOn:  true,
		freq:      50 * sim.MHz,
	}
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

// WithoutRecording sets the simulation to not record traces into a
// database.
func (b Builder) WithoutRecording() Builder {
	b.recordOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithTraceLogger makes the tracers print every record to the logger.
func (b Builder) WithTraceLogger(l *log.Logger) Builder {
	b.traceLogger = l
	return b
}

// WithFreq sets the frequency of the engine.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		log.Panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordOn && b.outputFileName != "" {
		log.Panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		compNameIndex: make(map[string]int),
		traceLogger:   b.traceLogger,
	}

	s.id = xid.New().String()

	s.engine = sim.NewSerialEngine()
	s.engine.SetFreq(b.freq)

	if b.recordOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "pdqsim_" + s.id
		}
		s.outputPath = outputPath + ".sqlite3"
		s.dataRecorder = datarecording.New(outputPath)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s
}
