// Package simulation puts an engine, a recorder and a monitor together.
package simulation

import (
	"io"
	"log"

	"github.com/pdqlab/pdqcore/comm"
	"github.com/pdqlab/pdqcore/datarecording"
	"github.com/pdqlab/pdqcore/monitoring"
	"github.com/pdqlab/pdqcore/sim"
	"github.com/pdqlab/pdqcore/tracing"
)

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id         string
	engine     *sim.SerialEngine
	outputPath string

	dataRecorder  datarecording.DataRecorder
	monitor       *monitoring.Monitor
	traceLogger   *log.Logger
	writeTracer   *tracing.WriteTracer
	commandTracer *tracing.CommandTracer

	components    []sim.Component
	compNameIndex map[string]int
}

// ID returns the unique id of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() *sim.SerialEngine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation. It is
// nil if recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// OutputPath returns the database file, or an empty string if recording is
// disabled.
func (s *Simulation) OutputPath() string {
	return s.outputPath
}

// GetMonitor returns the monitor used in the simulation. It is nil if
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// Drive runs f while no cycle can be started through the monitor. Without a
// monitor it simply runs f.
func (s *Simulation) Drive(f func() error) error {
	if s.monitor == nil {
		return f()
	}

	return s.monitor.Drive(f)
}

// GetWriteTracer returns the tracer of the memory writes, or nil before a
// core is registered.
func (s *Simulation) GetWriteTracer() *tracing.WriteTracer {
	return s.writeTracer
}

// GetCommandTracer returns the tracer of the dispatched commands, or nil
// before a core is registered.
func (s *Simulation) GetCommandTracer() *tracing.CommandTracer {
	return s.commandTracer
}

// RegisterComponent registers a component with the simulation and appends it
// to the evaluation order of the engine.
func (s *Simulation) RegisterComponent(c sim.Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		log.Panicf("component %s already registered", compName)
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	s.engine.RegisterComponent(c)

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// RegisterComm registers the components of a core built without an engine
// and attaches the tracers to it.
func (s *Simulation) RegisterComm(c *comm.Comm) {
	for _, comp := range c.Components() {
		s.RegisterComponent(comp)
	}

	s.engine.RegisterDomain(c.Domain())

	if s.monitor != nil {
		s.monitor.RegisterComm(c)
	}

	if s.dataRecorder == nil && s.traceLogger == nil {
		return
	}

	if s.writeTracer == nil {
		s.writeTracer = tracing.NewWriteTracer(
			s.engine, s.dataRecorder, s.traceLogger)
		s.commandTracer = tracing.NewCommandTracer(
			s.engine, s.dataRecorder, s.traceLogger)
	}

	tracing.CollectTrace(c.Writer(), s.writeTracer)
	tracing.CollectTrace(c.Dispatcher(), s.commandTracer)
}

// GetComponentByName returns the component with the given name, or nil.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	i, found := s.compNameIndex[name]
	if !found {
		return nil
	}

	return s.components[i]
}

// Components returns all the registered components.
func (s *Simulation) Components() []sim.Component {
	return s.components
}

// Terminate flushes the recorded data and stops the monitoring server.
func (s *Simulation) Terminate() {
	if s.monitor != nil {
		s.monitor.StopServer()
	}

	if s.dataRecorder == nil {
		return
	}

	s.dataRecorder.Flush()

	if closer, ok := s.dataRecorder.(io.Closer); ok {
		err := closer.Close()
		if err != nil {
			log.Panic(err)
		}
	}
}
