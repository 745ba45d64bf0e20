package bus

import (
	"log"
	"math/rand"

	"github.com/pdqlab/pdqcore/sim"
)

// HostFIFOState is the state of the host FIFO model.
type HostFIFOState int

// The states of the host FIFO model.
const (
	HostFIFOFill HostFIFOState = iota
	HostFIFORead
	HostFIFOSetup
	HostFIFOWait
	HostFIFODelay
)

var hostFIFOStateNames = [...]string{"fill", "read", "setup", "wait", "delay"}

func (s HostFIFOState) String() string {
	if int(s) < len(hostFIFOStateNames) {
		return hostFIFOStateNames[s]
	}

	return "unknown"
}

// idleData is what the data pins read while the strobe is released.
const idleData byte = 0x55

type delayRange [2]int

// HostFIFOBuilder can build host FIFO models.
type HostFIFOBuilder struct {
	pins        *Pins
	seed        int64
	fixed       bool
	initialWait int
	fill        delayRange
	setup       delayRange
	delay       delayRange
}

// MakeHostFIFOBuilder returns a HostFIFOBuilder with the FT245R delays.
func MakeHostFIFOBuilder() HostFIFOBuilder {
	return HostFIFOBuilder{
		seed:        1,
		initialWait: 10,
		fill:        delayRange{0, 3},
		setup:       delayRange{0, 4},
		delay:       delayRange{0, 1},
	}
}

// WithPins sets the pins the model drives.
func (b HostFIFOBuilder) WithPins(p *Pins) HostFIFOBuilder {
	b.pins = p
	return b
}

// WithSeed sets the seed of the random delays.
func (b HostFIFOBuilder) WithSeed(seed int64) HostFIFOBuilder {
	b.seed = seed
	return b
}

// WithFixedDelays always uses the longest delay of each range.
func (b HostFIFOBuilder) WithFixedDelays() HostFIFOBuilder {
	b.fixed = true
	return b
}

// WithInitialWait sets the cycles before data is first announced.
func (b HostFIFOBuilder) WithInitialWait(cycles int) HostFIFOBuilder {
	b.initialWait = cycles
	return b
}

// WithFillDelays sets the two possible cycles the FIFO stays empty between
// reads.
func (b HostFIFOBuilder) WithFillDelays(short, long int) HostFIFOBuilder {
	b.fill = delayRange{short, long}
	return b
}

// WithSetupDelays sets the two possible cycles before the data is stable.
func (b HostFIFOBuilder) WithSetupDelays(short, long int) HostFIFOBuilder {
	b.setup = delayRange{short, long}
	return b
}

// Build creates a host FIFO model with the given name.
func (b HostFIFOBuilder) Build(name string) *HostFIFO {
	if b.pins == nil {
		log.Panicf("host fifo %s has no pins", name)
	}

	h := &HostFIFO{
		pins:  b.pins,
		rng:   rand.New(rand.NewSource(b.seed)),
		fixed: b.fixed,
		fill:  b.fill,
		setup: b.setup,
		delay: b.delay,
		state: HostFIFOFill,
		wait:  b.initialWait,
	}
	h.ComponentBase = sim.NewComponentBase(name)
	h.available = sim.NewReg(h, false)
	h.dat = sim.NewReg[byte](h, 0)
	h.strobeIn = sim.NewReg(h, false)

	return h
}

// HostFIFO drives the bus pins like the FIFO chip a host writes into. The
// strobe observed by the receiver is the strobe it drives, one cycle late.
type HostFIFO struct {
	*sim.ComponentBase

	pins  *Pins
	rng   *rand.Rand
	fixed bool
	fill  delayRange
	setup delayRange
	delay delayRange

	queue []byte
	sent  int
	state HostFIFOState
	wait  int

	available *sim.Reg[bool]
	dat       *sim.Reg[byte]
	strobeIn  *sim.Reg[bool]
}

// Write queues bytes for the receiver.
func (h *HostFIFO) Write(data []byte) {
	h.queue = append(h.queue, data...)
}

// Pending returns the number of queued bytes not read yet.
func (h *HostFIFO) Pending() int {
	return len(h.queue)
}

// Sent returns the number of bytes handed to the receiver.
func (h *HostFIFO) Sent() int {
	return h.sent
}

// Drained tells if all queued bytes have been read and the last read cycle
// has finished.
func (h *HostFIFO) Drained() bool {
	return len(h.queue) == 0 && h.state == HostFIFOFill
}

// State returns the current state.
func (h *HostFIFO) State() HostFIFOState {
	return h.state
}

func (h *HostFIFO) choose(r delayRange) int {
	if h.fixed {
		return r[1]
	}

	return r[h.rng.Intn(len(r))]
}

// Propagate drives the data, availability and loopback pins.
func (h *HostFIFO) Propagate() {
	h.pins.DataAvailable = h.available.Get()
	h.pins.StrobeIn = h.strobeIn.Get()

	if h.pins.StrobeOut {
		h.pins.Data = h.dat.Get()
	} else {
		h.pins.Data = idleData
	}
}

// Tick advances the FIFO state.
func (h *HostFIFO) Tick() bool {
	strobe := h.pins.StrobeOut
	h.strobeIn.Set(strobe)

	if h.wait > 0 {
		h.wait--
	}

	switch h.state {
	case HostFIFOFill:
		h.available.Set(false)
		if len(h.queue) > 0 && h.wait == 0 {
			h.available.Set(true)
			h.state = HostFIFORead
		}
	case HostFIFORead:
		if strobe {
			h.wait = h.choose(h.setup)
			h.state = HostFIFOSetup
		}
	case HostFIFOSetup:
		if h.wait == 0 {
			h.dat.Set(h.queue[0])
			h.queue = h.queue[1:]
			h.sent++
			h.state = HostFIFOWait
		}

		if !strobe {
			h.wait = h.choose(h.delay)
			h.state = HostFIFODelay
		}
	case HostFIFOWait:
		if !strobe {
			h.wait = h.choose(h.delay)
			h.state = HostFIFODelay
		}
	case HostFIFODelay:
		if h.wait == 0 {
			h.wait = h.choose(h.fill)
			h.state = HostFIFOFill
		}
	}

	return len(h.queue) > 0 || h.state != HostFIFOFill
}
