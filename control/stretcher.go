package control

import (
	"errors"
	"fmt"

	"github.com/pdqlab/pdqcore/sim"
)

// ErrInvalidWindow is returned when a reset window is shorter than two
// cycles.
var ErrInvalidWindow = errors.New("control: reset window must be at least 2 cycles")

// DefaultResetWindow is the counter length of the stretcher.
const DefaultResetWindow = 128

// A TriggerSource requests a reset.
type TriggerSource interface {
	ResetTrigger() bool
}

// StretcherBuilder can build reset stretchers.
type StretcherBuilder struct {
	trigger TriggerSource
	window  int
}

// MakeStretcherBuilder returns a StretcherBuilder with a 128-cycle counter.
func MakeStretcherBuilder() StretcherBuilder {
	return StretcherBuilder{
		window: DefaultResetWindow,
	}
}

// WithTrigger sets what requests the reset.
func (b StretcherBuilder) WithTrigger(t TriggerSource) StretcherBuilder {
	b.trigger = t
	return b
}

// WithWindow sets the counter length. A trigger asserts the reset for
// window-1 cycles.
func (b StretcherBuilder) WithWindow(n int) StretcherBuilder {
	b.window = n
	return b
}

// Build creates a stretcher with the given name.
func (b StretcherBuilder) Build(name string) (*Stretcher, error) {
	if b.window < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, b.window)
	}

	s := &Stretcher{
		trigger: b.trigger,
		window:  b.window,
	}
	s.ComponentBase = sim.NewComponentBase(name)
	s.counter = sim.NewReg(s, 0)

	return s, nil
}

// Stretcher turns a trigger into a reset that lasts a fixed number of
// cycles. A new trigger restarts the window. The counter starts at zero, so
// the reset is also asserted after power on.
type Stretcher struct {
	*sim.ComponentBase

	trigger TriggerSource
	window  int
	counter *sim.Reg[int]
}

// Window returns the counter length.
func (s *Stretcher) Window() int {
	return s.window
}

// Counter returns the counter value.
func (s *Stretcher) Counter() int {
	return s.counter.Get()
}

// Reset tells if the reset is asserted in the current cycle.
func (s *Stretcher) Reset() bool {
	return s.counter.Get() != s.window-1
}

// Tick restarts or advances the counter.
func (s *Stretcher) Tick() bool {
	switch {
	case s.trigger != nil && s.trigger.ResetTrigger():
		s.counter.Set(0)
	case s.Reset():
		s.counter.Set(s.counter.Get() + 1)
	default:
		return false
	}

	return true
}
