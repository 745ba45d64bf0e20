// Package comm assembles the communication core: the bus receiver, the
// stream demultiplexer, the word packer, the memory writer, the control
// dispatcher and the reset stretcher.
//
//	Receiver -> Demux -A-> Packer -> Writer -> memories
//	              \--B-> Dispatcher -> ResetGen -> reset of the others
package comm

import (
	"github.com/pdqlab/pdqcore/bus"
	"github.com/pdqlab/pdqcore/control"
	"github.com/pdqlab/pdqcore/escape"
	"github.com/pdqlab/pdqcore/mem"
	"github.com/pdqlab/pdqcore/memwriter"
	"github.com/pdqlab/pdqcore/packer"
	"github.com/pdqlab/pdqcore/sim"
)

// Waveform clock rates selected by the clock-select register.
const (
	SlowClock = 50 * sim.MHz
	FastClock = 100 * sim.MHz
)

// Comm is an assembled communication core.
type Comm struct {
	name   string
	engine sim.Engine
	pins   *bus.Pins
	domain *sim.Domain

	receiver   *bus.Comp
	demux      *escape.Comp
	packer     *packer.Comp[uint16]
	writer     *memwriter.Comp
	dispatcher *control.Dispatcher
	stretcher  *control.Stretcher

	ports    []mem.WritePort
	storages []*mem.Storage
}

// Name returns the name of the core.
func (c *Comm) Name() string {
	return c.name
}

// Pins returns the bus pins.
func (c *Comm) Pins() *bus.Pins {
	return c.pins
}

// Domain returns the reset domain driven by the reset stretcher.
func (c *Comm) Domain() *sim.Domain {
	return c.domain
}

// Receiver returns the bus receiver.
func (c *Comm) Receiver() *bus.Comp {
	return c.receiver
}

// Demux returns the stream demultiplexer.
func (c *Comm) Demux() *escape.Comp {
	return c.demux
}

// Packer returns the word packer.
func (c *Comm) Packer() *packer.Comp[uint16] {
	return c.packer
}

// Writer returns the memory writer.
func (c *Comm) Writer() *memwriter.Comp {
	return c.writer
}

// Dispatcher returns the control dispatcher.
func (c *Comm) Dispatcher() *control.Dispatcher {
	return c.dispatcher
}

// Stretcher returns the reset stretcher.
func (c *Comm) Stretcher() *control.Stretcher {
	return c.stretcher
}

func (c *Comm) sysComponents() []sim.Component {
	return []sim.Component{
		c.receiver,
		c.demux,
		c.packer,
		c.writer,
		c.dispatcher,
	}
}

// Components returns all the components in evaluation order.
func (c *Comm) Components() []sim.Component {
	return append(c.sysComponents(), c.stretcher)
}

// Registers returns the control outputs.
func (c *Comm) Registers() control.Registers {
	return c.dispatcher.Registers()
}

// NumMemories returns the number of attached memories.
func (c *Comm) NumMemories() int {
	return len(c.ports)
}

// Memory returns the i-th channel memory. It returns nil if the memories
// were given as ports or i is out of range.
func (c *Comm) Memory(i int) *mem.Storage {
	if i < 0 || i >= len(c.storages) {
		return nil
	}

	return c.storages[i]
}

// SetBoard changes the board-select input.
func (c *Comm) SetBoard(board uint16) {
	c.writer.SetBoard(board)
}

// Reset tells if the stretched reset is asserted.
func (c *Comm) Reset() bool {
	return c.stretcher.Reset()
}

// Busy tells if the receiver holds a byte nobody takes.
func (c *Comm) Busy() bool {
	return c.receiver.Busy()
}

// Idle tells if no byte is in flight and the writer waits for a new
// transaction.
func (c *Comm) Idle() bool {
	return !c.receiver.Reading() &&
		!c.receiver.Pending() &&
		!c.demux.Escaped() &&
		!c.packer.Pending() &&
		c.packer.Partial() == 0 &&
		c.writer.State() == memwriter.StateSelectDest
}

// ClockFreq returns the waveform clock rate selected by the clock-select
// register.
func (c *Comm) ClockFreq() sim.Freq {
	if c.dispatcher.ClockSelect() {
		return FastClock
	}

	return SlowClock
}
