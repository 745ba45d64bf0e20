package memwriter

import (
	"log"

	"github.com/pdqlab/pdqcore/mem"
	"github.com/pdqlab/pdqcore/sim"
)

// Builder can build memory writers.
type Builder struct {
	in        *sim.Stream[uint16]
	board     uint16
	boardBits int
	memories  []mem.WritePort
}

// MakeBuilder returns a Builder with a 4-bit board select.
func MakeBuilder() Builder {
	return Builder{
		boardBits: 4,
	}
}

// WithInput sets the word stream that carries the write transactions.
func (b Builder) WithInput(in *sim.Stream[uint16]) Builder {
	b.in = in
	return b
}

// WithBoard sets the board-select value the writer listens to.
func (b Builder) WithBoard(board uint16) Builder {
	b.board = board
	return b
}

// WithBoardBits sets the width of the board-select field.
func (b Builder) WithBoardBits(n int) Builder {
	b.boardBits = n
	return b
}

// WithMemories sets the memories, indexed by destination id.
func (b Builder) WithMemories(memories ...mem.WritePort) Builder {
	b.memories = memories
	return b
}

// Build creates a memory writer with the given name.
func (b Builder) Build(name string) *Comp {
	if b.in == nil {
		log.Panicf("memory writer %s has no input stream", name)
	}

	if b.boardBits < 0 || b.boardBits > MaxBoardBits {
		log.Panicf("memory writer %s: board select of %d bits does not fit",
			name, b.boardBits)
	}

	if len(b.memories) > MaxMemories {
		log.Panicf("memory writer %s: %d memories exceed %d destinations",
			name, len(b.memories), MaxMemories)
	}

	c := &Comp{
		in:        b.in,
		memories:  b.memories,
		boardMask: uint16(1)<<b.boardBits - 1,
	}
	c.ComponentBase = sim.NewComponentBase(name)
	c.SetBoard(b.board)
	c.state = sim.NewReg(c, StateSelectDest)
	c.dest = sim.NewReg(c, 0)
	c.listen = sim.NewReg(c, false)
	c.addr = sim.NewReg[uint16](c, 0)
	c.end = sim.NewReg[uint16](c, 0)

	return c
}
