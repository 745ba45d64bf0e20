package comm

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pdqlab/pdqcore/bus"
	"github.com/pdqlab/pdqcore/control"
	"github.com/pdqlab/pdqcore/escape"
	"github.com/pdqlab/pdqcore/mem"
	"github.com/pdqlab/pdqcore/memwriter"
	"github.com/pdqlab/pdqcore/packer"
	"github.com/pdqlab/pdqcore/sim"
)

var (
	// ErrInvalidBoardBits is returned when the board select does not fit
	// into the header word.
	ErrInvalidBoardBits = errors.New("invalid board select width")

	// ErrTooManyMemories is returned when more memories are given than
	// there are destination ids.
	ErrTooManyMemories = errors.New("too many memories")
)

// Builder can build communication cores.
type Builder struct {
	engine        sim.Engine
	pins          *bus.Pins
	ctrlPins      *control.Pins
	board         uint16
	boardBits     int
	busPeriod     time.Duration
	esc           byte
	resetWindow   int
	channels      int
	depth         int
	memories      []mem.WritePort
	resetFeedback bool
}

// MakeBuilder returns a Builder with three channels of 8192 words each.
func MakeBuilder() Builder {
	return Builder{
		boardBits:     4,
		busPeriod:     bus.DefaultPeriod,
		esc:           escape.DefaultEscape,
		resetWindow:   control.DefaultResetWindow,
		channels:      3,
		depth:         mem.DefaultDepth,
		resetFeedback: true,
	}
}

// WithEngine sets the engine the components are registered to.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithPins sets the bus pins.
func (b Builder) WithPins(p *bus.Pins) Builder {
	b.pins = p
	return b
}

// WithControlPins sets the external trigger and frame inputs.
func (b Builder) WithControlPins(p *control.Pins) Builder {
	b.ctrlPins = p
	return b
}

// WithBoard sets the board-select value.
func (b Builder) WithBoard(board uint16) Builder {
	b.board = board
	return b
}

// WithBoardBits sets the width of the board-select field.
func (b Builder) WithBoardBits(n int) Builder {
	b.boardBits = n
	return b
}

// WithBusPeriod sets the bus clock period.
func (b Builder) WithBusPeriod(period time.Duration) Builder {
	b.busPeriod = period
	return b
}

// WithEscape sets the escape byte of the stream.
func (b Builder) WithEscape(esc byte) Builder {
	b.esc = esc
	return b
}

// WithResetWindow sets the counter length of the reset stretcher.
func (b Builder) WithResetWindow(n int) Builder {
	b.resetWindow = n
	return b
}

// WithChannels sets the number of channel memories and their depth.
func (b Builder) WithChannels(n, depth int) Builder {
	b.channels = n
	b.depth = depth
	return b
}

// WithMemories replaces the channel memories with the given ports, indexed
// by destination id.
func (b Builder) WithMemories(ports ...mem.WritePort) Builder {
	b.memories = ports
	return b
}

// WithoutResetFeedback keeps the stretched reset from resetting the other
// components.
func (b Builder) WithoutResetFeedback() Builder {
	b.resetFeedback = false
	return b
}

// Build creates the core with the given name.
func (b Builder) Build(name string) (*Comm, error) {
	c := &Comm{
		name: name,
		pins: b.pins,
	}
	if c.pins == nil {
		c.pins = &bus.Pins{}
	}

	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("comm %s: %w", name, err)
	}

	if err := b.buildMemories(c); err != nil {
		return nil, fmt.Errorf("comm %s: %w", name, err)
	}

	if err := b.buildDataPath(c); err != nil {
		return nil, fmt.Errorf("comm %s: %w", name, err)
	}

	if err := b.buildControl(c); err != nil {
		return nil, fmt.Errorf("comm %s: %w", name, err)
	}

	c.domain = sim.NewDomain(sim.BuildName(name, "Sys"))
	for _, comp := range c.sysComponents() {
		c.domain.AddComponent(comp)
	}

	if b.resetFeedback {
		c.domain.SetResetSource(c.stretcher)
	}

	if b.engine != nil {
		c.engine = b.engine
		c.engine.RegisterDomain(c.domain)
		for _, comp := range c.Components() {
			c.engine.RegisterComponent(comp)
		}
	}

	return c, nil
}

func (b Builder) validate() error {
	if b.boardBits < 0 || b.boardBits > memwriter.MaxBoardBits {
		return fmt.Errorf("%w: %d bits", ErrInvalidBoardBits, b.boardBits)
	}

	n := b.channels
	if b.memories != nil {
		n = len(b.memories)
	}

	if n > memwriter.MaxMemories {
		return fmt.Errorf("%w: %d", ErrTooManyMemories, n)
	}

	if b.board>>b.boardBits != 0 {
		log.Printf("board 0x%x is wider than %d bits, upper bits ignored",
			b.board, b.boardBits)
	}

	return nil
}

func (b Builder) buildMemories(c *Comm) error {
	if b.memories != nil {
		c.ports = b.memories
		return nil
	}

	for i := 0; i < b.channels; i++ {
		s, err := mem.NewStorage(b.depth)
		if err != nil {
			return err
		}

		c.storages = append(c.storages, s)
		c.ports = append(c.ports, s)
	}

	return nil
}

func (b Builder) buildDataPath(c *Comm) error {
	var err error

	c.receiver, err = bus.MakeBuilder().
		WithPins(c.pins).
		WithPeriod(b.busPeriod).
		Build(sim.BuildName(c.name, "Receiver"))
	if err != nil {
		return err
	}

	c.demux = escape.MakeBuilder().
		WithInput(c.receiver.Output()).
		WithEscape(b.esc).
		Build(sim.BuildName(c.name, "Demux"))

	c.packer, err = packer.MakeBuilder[uint16]().
		WithInput(c.demux.OutputA()).
		Build(sim.BuildName(c.name, "Packer"))
	if err != nil {
		return err
	}

	c.writer = memwriter.MakeBuilder().
		WithInput(c.packer.Output()).
		WithBoard(b.board).
		WithBoardBits(b.boardBits).
		WithMemories(c.ports...).
		Build(sim.BuildName(c.name, "Writer"))

	return nil
}

func (b Builder) buildControl(c *Comm) error {
	var err error

	c.dispatcher = control.MakeDispatcherBuilder().
		WithInput(c.demux.OutputB()).
		WithPins(b.ctrlPins).
		Build(sim.BuildName(c.name, "Dispatcher"))

	c.stretcher, err = control.MakeStretcherBuilder().
		WithTrigger(c.dispatcher).
		WithWindow(b.resetWindow).
		Build(sim.BuildName(c.name, "ResetGen"))

	return err
}
