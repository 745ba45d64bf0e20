// Package wire builds the byte streams a host sends to the communication
// core.
package wire

import (
	"errors"
	"fmt"

	"github.com/pdqlab/pdqcore/control"
	"github.com/pdqlab/pdqcore/escape"
)

// Errors returned when a memory write cannot be framed.
var (
	ErrEmptyPayload  = errors.New("wire: memory write without payload")
	ErrRangeOverflow = errors.New("wire: memory write past address 0xffff")
	ErrInvalidTarget = errors.New("wire: board or channel out of range")
)

const (
	maxChannel = 0xf
	maxBoard   = 0xfff
	maxAddress = 0xffff
)

// An Encoder accumulates a byte stream.
type Encoder struct {
	stuffer escape.Stuffer
	buf     []byte
}

// NewEncoder creates an Encoder with the default escape byte.
func NewEncoder() *Encoder {
	return NewEncoderWithEscape(escape.DefaultEscape)
}

// NewEncoderWithEscape creates an Encoder with a custom escape byte.
func NewEncoderWithEscape(esc byte) *Encoder {
	return &Encoder{stuffer: escape.Stuffer{Escape: esc}}
}

// Command appends commands.
func (e *Encoder) Command(cmds ...control.Command) error {
	for _, cmd := range cmds {
		buf, err := e.stuffer.AppendCommand(e.buf, byte(cmd))
		if err != nil {
			return err
		}

		e.buf = buf
	}

	return nil
}

// MemWrite appends a transaction that writes words into the memory of a
// channel from the start address on.
func (e *Encoder) MemWrite(
	board, channel uint16,
	start uint16,
	words []uint16,
) error {
	if len(words) == 0 {
		return ErrEmptyPayload
	}

	if channel > maxChannel || board > maxBoard {
		return fmt.Errorf("%w: board %d, channel %d",
			ErrInvalidTarget, board, channel)
	}

	end := int(start) + len(words) - 1
	if end > maxAddress {
		return fmt.Errorf("%w: %d words from 0x%04x",
			ErrRangeOverflow, len(words), start)
	}

	e.appendWord(channel | board<<4)
	e.appendWord(start)
	e.appendWord(uint16(end))

	for _, w := range words {
		e.appendWord(w)
	}

	return nil
}

// ResetSequence appends a plain zero byte, which completes any pending
// escape, followed by a reset command.
func (e *Encoder) ResetSequence() {
	e.buf = append(e.buf, 0x00)
	e.buf = append(e.buf, e.stuffer.Escape, byte(control.CmdResetEnable))
}

// Raw appends bytes without escaping them.
func (e *Encoder) Raw(data ...byte) {
	e.buf = append(e.buf, data...)
}

func (e *Encoder) appendWord(w uint16) {
	e.buf = e.stuffer.AppendData(e.buf, []byte{byte(w), byte(w >> 8)})
}

// Bytes returns the stream built so far.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes built so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset discards the stream built so far.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}
