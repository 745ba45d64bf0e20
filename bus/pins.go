// Package bus models the receive side of an FT245R-style parallel FIFO bus.
package bus

import (
	"errors"
	"fmt"
	"time"

	"github.com/pdqlab/pdqcore/sim"
)

// ErrInvalidPeriod is returned when the bus clock period is not positive.
var ErrInvalidPeriod = errors.New("bus: clock period must be positive")

// ErrInvalidTiming is returned when the read-cycle milestones are not in
// increasing order.
var ErrInvalidTiming = errors.New("bus: latch, drop and refill must increase")

// DefaultPeriod is the bus clock period used when none is given.
const DefaultPeriod = 10 * time.Nanosecond

// Pins are the logical signals between the receiver and the FIFO chip.
type Pins struct {
	// DataAvailable is high while the FIFO holds data.
	DataAvailable bool

	// Data is the byte the FIFO presents.
	Data byte

	// StrobeOut is the read strobe requested by the receiver.
	StrobeOut bool

	// StrobeIn is the read strobe as observed back from the bus.
	StrobeIn bool
}

// Timing holds the read-cycle milestones, counted in clock cycles from the
// moment the strobe is observed.
type Timing struct {
	// Latch is when the data pins are sampled.
	Latch int

	// Drop is when the strobe is released.
	Drop int

	// Refill is when the next read may begin.
	Refill int
}

// FT245R timing contract.
const (
	setupTime     = 50 * time.Nanosecond
	skewTime      = 20 * time.Nanosecond
	prechargeTime = 50 * time.Nanosecond
)

// NewTiming derives the read-cycle timing from the clock period.
func NewTiming(period time.Duration) (Timing, error) {
	if period <= 0 {
		return Timing{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}

	latch, err := sim.CyclesNoLessThan(setupTime, period)
	if err != nil {
		return Timing{}, err
	}

	skew, err := sim.CyclesNoLessThan(skewTime, period)
	if err != nil {
		return Timing{}, err
	}

	precharge, err := sim.CyclesNoLessThan(prechargeTime, period)
	if err != nil {
		return Timing{}, err
	}

	t := Timing{
		Latch:  latch,
		Drop:   latch + skew,
		Refill: latch + skew + precharge,
	}

	return t, nil
}

// MustNewTiming is NewTiming that panics on error.
func MustNewTiming(period time.Duration) Timing {
	t, err := NewTiming(period)
	if err != nil {
		panic(err)
	}

	return t
}

// Valid tells if the milestones are in order.
func (t Timing) Valid() bool {
	return t.Latch > 0 && t.Latch < t.Drop && t.Drop < t.Refill
}
