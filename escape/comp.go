// Package escape splits one byte stream into a data channel and a command
// channel separated by an escape byte.
package escape

import (
	"github.com/pdqlab/pdqcore/sim"
)

// DefaultEscape is the escape byte used on the bus.
const DefaultEscape byte = 0xA5

// Comp is the demultiplexer. Plain bytes go to channel A. An escape byte
// followed by another escape byte is a literal escape on channel A. An
// escape byte followed by any other byte sends that byte to channel B.
type Comp struct {
	*sim.ComponentBase

	in   *sim.Stream[byte]
	outA *sim.Stream[byte]
	outB *sim.Stream[byte]
	esc  byte

	escaped *sim.Reg[bool]
}

// OutputA returns the data channel.
func (c *Comp) OutputA() *sim.Stream[byte] {
	return c.outA
}

// OutputB returns the command channel.
func (c *Comp) OutputB() *sim.Stream[byte] {
	return c.outB
}

// Escaped tells if the last accepted byte was an unpaired escape byte.
func (c *Comp) Escaped() bool {
	return c.escaped.Get()
}

// Escape returns the escape byte.
func (c *Comp) Escape() byte {
	return c.esc
}

type route int

const (
	routeNone route = iota
	routeA
	routeB
)

func (c *Comp) route() route {
	isEsc := c.in.Data == c.esc

	switch {
	case !c.escaped.Get() && isEsc:
		return routeNone
	case c.escaped.Get() && !isEsc:
		return routeB
	default:
		return routeA
	}
}

// Propagate forwards the input byte to the channel it belongs to.
func (c *Comp) Propagate() {
	r := c.route()
	valid := c.in.Valid

	c.outA.Drive(valid && r == routeA, c.in.Data)
	c.outB.Drive(valid && r == routeB, c.in.Data)
}

// Backpressure accepts the input byte when its channel can take it.
func (c *Comp) Backpressure() {
	switch c.route() {
	case routeNone:
		c.in.Accept(true)
	case routeB:
		c.in.Accept(c.outB.Ready)
	default:
		c.in.Accept(c.outA.Ready)
	}
}

// Tick updates the escape state after a byte is consumed.
func (c *Comp) Tick() bool {
	if !c.in.Fire() {
		return false
	}

	c.escaped.Set(!c.escaped.Get() && c.in.Data == c.esc)

	return true
}
