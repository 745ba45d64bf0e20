package escape

import (
	"log"

	"github.com/pdqlab/pdqcore/sim"
)

// Builder can build stream demultiplexers.
type Builder struct {
	in  *sim.Stream[byte]
	esc byte
}

// MakeBuilder returns a Builder with the default escape byte.
func MakeBuilder() Builder {
	return Builder{
		esc: DefaultEscape,
	}
}

// WithInput sets the byte stream to split.
func (b Builder) WithInput(in *sim.Stream[byte]) Builder {
	b.in = in
	return b
}

// WithEscape sets the escape byte.
func (b Builder) WithEscape(esc byte) Builder {
	b.esc = esc
	return b
}

// Build creates a demultiplexer with the given name.
func (b Builder) Build(name string) *Comp {
	if b.in == nil {
		log.Panicf("demux %s has no input stream", name)
	}

	c := &Comp{
		in:   b.in,
		esc:  b.esc,
		outA: sim.NewStream[byte](sim.BuildName(name, "A")),
		outB: sim.NewStream[byte](sim.BuildName(name, "B")),
	}
	c.ComponentBase = sim.NewComponentBase(name)
	c.escaped = sim.NewReg(c, false)

	return c
}
