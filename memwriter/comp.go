// Package memwriter turns a word stream of framed write transactions into
// memory writes.
//
// A transaction is a destination word, a start address, an end address and
// one payload word per address from start to end inclusive. The
// destination word carries the destination id in its low four bits and the
// board select in the bits above.
package memwriter

import (
	"github.com/pdqlab/pdqcore/mem"
	"github.com/pdqlab/pdqcore/sim"
)

const destBits = 4

// MaxBoardBits is the widest board select that fits next to the
// destination id in the header word.
const MaxBoardBits = 16 - destBits

// MaxMemories is the number of destination ids.
const MaxMemories = 1 << destBits

// State is the position of the writer within a transaction.
type State int

// The states of the writer.
const (
	StateSelectDest State = iota
	StateStartAddr
	StateEndAddr
	StatePayload
)

var stateNames = [...]string{"SELECT_DEST", "START_ADDR", "END_ADDR", "PAYLOAD"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "UNKNOWN"
}

// HookPosMemWrite is the hook position invoked for every payload word. The
// item is a WriteEnable.
var HookPosMemWrite = &sim.HookPos{Name: "MemWrite"}

// WriteEnable describes what happens to one payload word.
type WriteEnable struct {
	Dest    int
	Address uint16
	Data    uint16
	Enabled bool
}

// Comp is the memory writer. It is always ready.
type Comp struct {
	*sim.ComponentBase

	in        *sim.Stream[uint16]
	memories  []mem.WritePort
	board     uint16
	boardMask uint16

	state  *sim.Reg[State]
	dest   *sim.Reg[int]
	listen *sim.Reg[bool]
	addr   *sim.Reg[uint16]
	end    *sim.Reg[uint16]
}

// SetBoard changes the board-select input.
func (c *Comp) SetBoard(board uint16) {
	c.board = board & c.boardMask
}

// Board returns the board-select input.
func (c *Comp) Board() uint16 {
	return c.board
}

// State returns the current state.
func (c *Comp) State() State {
	return c.state.Get()
}

// Address returns the address of the next payload word.
func (c *Comp) Address() uint16 {
	return c.addr.Get()
}

// EndAddress returns the last address of the transaction.
func (c *Comp) EndAddress() uint16 {
	return c.end.Get()
}

// Dest returns the latched destination id.
func (c *Comp) Dest() int {
	return c.dest.Get()
}

// Listening tells if the transaction is addressed to this board.
func (c *Comp) Listening() bool {
	return c.listen.Get()
}

// Backpressure accepts every word.
func (c *Comp) Backpressure() {
	c.in.Accept(true)
}

// Tick processes the accepted word.
func (c *Comp) Tick() bool {
	if !c.in.Fire() {
		return false
	}

	word := c.in.Data

	switch c.state.Get() {
	case StateSelectDest:
		c.dest.Set(int(word & (1<<destBits - 1)))
		c.listen.Set((word>>destBits)&c.boardMask == c.board)
		c.state.Set(StateStartAddr)
	case StateStartAddr:
		c.addr.Set(word)
		c.state.Set(StateEndAddr)
	case StateEndAddr:
		c.end.Set(word)
		c.state.Set(StatePayload)
	case StatePayload:
		c.writePayload(word)
	}

	return true
}

func (c *Comp) writePayload(word uint16) {
	addr := c.addr.Get()
	we := WriteEnable{
		Dest:    c.dest.Get(),
		Address: addr,
		Data:    word,
	}

	if c.listen.Get() {
		if port := c.port(we.Dest); port != nil {
			port.Write(addr, word)
			we.Enabled = true
		}
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosMemWrite,
		Item:   we,
	})

	c.addr.Set(addr + 1)
	if addr == c.end.Get() {
		c.state.Set(StateSelectDest)
	}
}

// port returns nil for destinations beyond the attached memories so that
// the packet is dropped instead of landing on a truncated id.
func (c *Comp) port(dest int) mem.WritePort {
	if dest >= len(c.memories) {
		return nil
	}

	return c.memories[dest]
}
