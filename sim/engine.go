package sim

import "errors"

// ErrCycleLimit is returned when a run stops because it reached its cycle
// limit before its condition became true.
var ErrCycleLimit = errors.New("sim: cycle limit reached")

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentCycle() VTimeInCycle
	CurrentTime() VTimeInSec
}

// An Engine steps all the registered components together, one cycle at a
// time.
type Engine interface {
	Hookable
	TimeTeller

	// RegisterComponent appends a component to the evaluation order.
	// Upstream components must be registered before downstream ones.
	RegisterComponent(c Component)

	// RegisterDomain makes the engine sample the reset of a domain.
	RegisterDomain(d *Domain)

	// Components returns the components in evaluation order.
	Components() []Component

	// Tick evaluates one cycle.
	Tick()

	// Run evaluates the given number of cycles.
	Run(cycles uint64) error

	// RunUntil evaluates cycles until done returns true. It returns
	// ErrCycleLimit if done is still false after limit cycles.
	RunUntil(done func() bool, limit uint64) error

	// Pause will pause the simulation until continue is called.
	Pause()

	// Continue will continue the paused simulation
	Continue()
}
