package bus

import (
	"fmt"
	"log"
	"time"

	"github.com/pdqlab/pdqcore/sim"
)

// Builder can build bus receivers.
type Builder struct {
	pins   *Pins
	period time.Duration
	timing *Timing
}

// MakeBuilder returns a Builder for a 10 ns bus clock.
func MakeBuilder() Builder {
	return Builder{
		period: DefaultPeriod,
	}
}

// WithPins sets the pins the receiver drives and observes.
func (b Builder) WithPins(p *Pins) Builder {
	b.pins = p
	return b
}

// WithPeriod sets the bus clock period the timing is derived from.
func (b Builder) WithPeriod(period time.Duration) Builder {
	b.period = period
	return b
}

// WithTiming sets the read-cycle timing directly, ignoring the period.
func (b Builder) WithTiming(t Timing) Builder {
	b.timing = &t
	return b
}

// Build creates a receiver with the given name.
func (b Builder) Build(name string) (*Comp, error) {
	if b.pins == nil {
		log.Panicf("bus receiver %s has no pins", name)
	}

	var timing Timing
	if b.timing != nil {
		timing = *b.timing
		if !timing.Valid() {
			return nil, fmt.Errorf("%w: timing %+v", ErrInvalidTiming, timing)
		}
	} else {
		t, err := NewTiming(b.period)
		if err != nil {
			return nil, err
		}

		timing = t
	}

	c := &Comp{
		pins:   b.pins,
		timing: timing,
		out:    sim.NewStream[byte](sim.BuildName(name, "Out")),
	}
	c.ComponentBase = sim.NewComponentBase(name)
	c.strobe = sim.NewReg(c, false)
	c.reading = sim.NewReg(c, false)
	c.valid = sim.NewReg(c, false)
	c.data = sim.NewReg[byte](c, 0)
	c.counter = sim.NewReg(c, 0)

	return c, nil
}
