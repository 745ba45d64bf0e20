package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pdqlab/pdqcore/control"
	"github.com/pdqlab/pdqcore/wire"
)

// ErrInvalidStep is returned for program steps that do not say exactly one
// thing to do.
var ErrInvalidStep = errors.New("invalid program step")

// A Program describes a host byte stream.
//
//	escape: 0xa5
//	steps:
//	  - reset: true
//	  - commands: [DCM_EN, ARM_EN]
//	  - write: {board: 0, channel: 1, start: 0x100, words: [0x1234, 0xa5a5]}
//	  - raw: [0x00]
type Program struct {
	Escape *uint8 `yaml:"escape,omitempty"`
	Steps  []Step `yaml:"steps"`
}

// A Step is one element of a Program.
type Step struct {
	Reset    bool       `yaml:"reset,omitempty"`
	Commands []string   `yaml:"commands,omitempty"`
	Write    *WriteStep `yaml:"write,omitempty"`
	Raw      []int      `yaml:"raw,omitempty"`
}

// A WriteStep writes words into the memory of a channel.
type WriteStep struct {
	Board   uint16   `yaml:"board"`
	Channel uint16   `yaml:"channel"`
	Start   uint16   `yaml:"start"`
	Words   []uint16 `yaml:"words"`
}

// ParseProgram decodes a YAML program. Unknown keys are rejected.
func ParseProgram(data []byte) (*Program, error) {
	p := &Program{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(p)
	if err != nil {
		return nil, fmt.Errorf("parsing program: %w", err)
	}

	return p, nil
}

// Encode builds the byte stream of the program.
func (p *Program) Encode() ([]byte, error) {
	enc := wire.NewEncoder()
	if p.Escape != nil {
		enc = wire.NewEncoderWithEscape(*p.Escape)
	}

	for i, s := range p.Steps {
		err := s.encode(enc)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	return enc.Bytes(), nil
}

func (s Step) actions() int {
	n := 0
	if s.Reset {
		n++
	}
	if len(s.Commands) > 0 {
		n++
	}
	if s.Write != nil {
		n++
	}
	if len(s.Raw) > 0 {
		n++
	}

	return n
}

func (s Step) encode(enc *wire.Encoder) error {
	if s.actions() != 1 {
		return fmt.Errorf("%w: %d actions", ErrInvalidStep, s.actions())
	}

	switch {
	case s.Reset:
		enc.ResetSequence()
	case len(s.Commands) > 0:
		cmds := make([]control.Command, 0, len(s.Commands))
		for _, name := range s.Commands {
			cmd, err := control.ParseCommand(name)
			if err != nil {
				return err
			}
			cmds = append(cmds, cmd)
		}

		return enc.Command(cmds...)
	case s.Write != nil:
		w := s.Write
		return enc.MemWrite(w.Board, w.Channel, w.Start, w.Words)
	default:
		raw := make([]byte, 0, len(s.Raw))
		for _, b := range s.Raw {
			if b < 0 || b > 0xff {
				return fmt.Errorf("%w: raw byte %d", ErrInvalidStep, b)
			}
			raw = append(raw, byte(b))
		}
		enc.Raw(raw...)
	}

	return nil
}
