package packer

import (
	"errors"
	"fmt"
	"log"
	"math/bits"

	"github.com/pdqlab/pdqcore/sim"
)

// ErrInvalidWordSize is returned when the bytes in a word do not fit the
// word type.
var ErrInvalidWordSize = errors.New("packer: invalid number of bytes per word")

// Builder can build packers.
type Builder[W Word] struct {
	in           *sim.Stream[byte]
	bytesPerWord int
}

// MakeBuilder returns a Builder that packs two bytes per word.
func MakeBuilder[W Word]() Builder[W] {
	return Builder[W]{
		bytesPerWord: 2,
	}
}

// WithInput sets the byte stream to pack.
func (b Builder[W]) WithInput(in *sim.Stream[byte]) Builder[W] {
	b.in = in
	return b
}

// WithBytesPerWord sets how many bytes form one word.
func (b Builder[W]) WithBytesPerWord(k int) Builder[W] {
	b.bytesPerWord = k
	return b
}

// Build creates a packer with the given name.
func (b Builder[W]) Build(name string) (*Comp[W], error) {
	if b.in == nil {
		log.Panicf("packer %s has no input stream", name)
	}

	width := bits.Len64(uint64(^W(0)))
	if b.bytesPerWord < 1 || b.bytesPerWord*8 > width {
		return nil, fmt.Errorf("%w: %d bytes into %d bits",
			ErrInvalidWordSize, b.bytesPerWord, width)
	}

	c := &Comp[W]{
		in:           b.in,
		out:          sim.NewStream[W](sim.BuildName(name, "Out")),
		bytesPerWord: b.bytesPerWord,
	}
	c.ComponentBase = sim.NewComponentBase(name)
	c.word = sim.NewReg[W](c, 0)
	c.full = sim.NewReg(c, false)
	c.acc = sim.NewReg[W](c, 0)
	c.count = sim.NewReg(c, 0)

	return c, nil
}
