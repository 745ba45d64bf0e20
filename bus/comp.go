package bus

import (
	"github.com/pdqlab/pdqcore/sim"
)

// Comp is the bus receiver. It requests a read when the FIFO has data and
// the previous byte has been taken, then follows the read-cycle timeline
// of the observed strobe.
type Comp struct {
	*sim.ComponentBase

	pins   *Pins
	timing Timing
	out    *sim.Stream[byte]

	strobe  *sim.Reg[bool]
	reading *sim.Reg[bool]
	valid   *sim.Reg[bool]
	data    *sim.Reg[byte]
	counter *sim.Reg[int]
}

// Output returns the received byte stream.
func (c *Comp) Output() *sim.Stream[byte] {
	return c.out
}

// Pins returns the bus pins.
func (c *Comp) Pins() *Pins {
	return c.pins
}

// Timing returns the read-cycle timing.
func (c *Comp) Timing() Timing {
	return c.timing
}

// Reading tells if a read cycle is in progress.
func (c *Comp) Reading() bool {
	return c.reading.Get()
}

// Pending tells if a received byte has not been taken yet.
func (c *Comp) Pending() bool {
	return c.valid.Get()
}

// Busy tells if a received byte is waiting for the consumer.
func (c *Comp) Busy() bool {
	return c.valid.Get() && !c.out.Ready
}

// Propagate drives the strobe request and the received byte.
func (c *Comp) Propagate() {
	c.pins.StrobeOut = c.strobe.Get()
	c.out.Drive(c.valid.Get(), c.data.Get())
}

// Tick advances the read cycle.
func (c *Comp) Tick() bool {
	progress := false
	strobeIn := c.pins.StrobeIn
	reading := c.reading.Get()

	if c.out.Fire() {
		c.valid.Set(false)
		progress = true
	}

	if !reading && !strobeIn {
		c.strobe.Set(c.pins.DataAvailable && !c.Busy())
	}

	count := c.counter.Get()
	switch {
	case count == c.timing.Refill:
		c.counter.Set(0)
	case count != 0:
		c.counter.Set(count + 1)
	case strobeIn:
		c.counter.Set(1)
	}

	switch {
	case count == 0 && strobeIn:
		c.reading.Set(true)
		progress = true
	case count == c.timing.Latch:
		c.valid.Set(true)
		c.data.Set(c.pins.Data)
	case count == c.timing.Drop:
		c.strobe.Set(false)
	case count == c.timing.Refill:
		c.reading.Set(false)
	}

	return progress || count != 0
}
