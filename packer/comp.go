// Package packer groups consecutive bytes of a stream into words.
package packer

import (
	"github.com/pdqlab/pdqcore/sim"
)

// Word is the set of types a packer can produce.
type Word interface {
	~uint16 | ~uint32 | ~uint64
}

// Comp packs a fixed number of bytes into each word, the first byte in the
// least significant position. Only complete words are emitted.
type Comp[W Word] struct {
	*sim.ComponentBase

	in           *sim.Stream[byte]
	out          *sim.Stream[W]
	bytesPerWord int

	word  *sim.Reg[W]
	full  *sim.Reg[bool]
	acc   *sim.Reg[W]
	count *sim.Reg[int]
}

// Output returns the word stream.
func (c *Comp[W]) Output() *sim.Stream[W] {
	return c.out
}

// BytesPerWord returns the number of bytes in a word.
func (c *Comp[W]) BytesPerWord() int {
	return c.bytesPerWord
}

// Partial returns the number of bytes collected for the next word.
func (c *Comp[W]) Partial() int {
	return c.count.Get()
}

// Pending tells if a complete word waits for the consumer.
func (c *Comp[W]) Pending() bool {
	return c.full.Get()
}

// Propagate offers the completed word.
func (c *Comp[W]) Propagate() {
	c.out.Drive(c.full.Get(), c.word.Get())
}

// Backpressure accepts a byte while no word is waiting or the waiting word
// leaves in this cycle.
func (c *Comp[W]) Backpressure() {
	c.in.Accept(!c.full.Get() || c.out.Ready)
}

// Tick collects the accepted byte.
func (c *Comp[W]) Tick() bool {
	progress := false
	full := c.full.Get()

	if c.out.Fire() {
		full = false
		progress = true
	}

	if c.in.Fire() {
		count := c.count.Get()
		acc := c.acc.Get() | W(c.in.Data)<<(8*count)
		count++

		if count == c.bytesPerWord {
			c.word.Set(acc)
			full = true
			acc = 0
			count = 0
		}

		c.acc.Set(acc)
		c.count.Set(count)
		progress = true
	}

	c.full.Set(full)

	return progress
}
