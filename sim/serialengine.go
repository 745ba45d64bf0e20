package sim

import (
	"fmt"
	"log"
	"sync"
)

// A SerialEngine is an Engine that evaluates the components of a cycle one
// after another in a single goroutine.
type SerialEngine struct {
	HookableBase

	timeLock sync.RWMutex
	now      VTimeInCycle
	freq     Freq

	components []Component
	compNames  map[string]bool
	domains    []*Domain

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex
}

// NewSerialEngine creates a SerialEngine running at 50 MHz.
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)
	e.freq = 50 * MHz
	e.compNames = make(map[string]bool)

	return e
}

// SetFreq changes the frequency used to convert cycles into time.
func (e *SerialEngine) SetFreq(f Freq) {
	if f <= 0 {
		log.Panic("frequency must be positive")
	}

	e.freq = f
}

// Freq returns the frequency of the engine.
func (e *SerialEngine) Freq() Freq {
	return e.freq
}

// RegisterComponent appends a component to the evaluation order.
func (e *SerialEngine) RegisterComponent(c Component) {
	if e.compNames[c.Name()] {
		log.Panicf("component %s already registered", c.Name())
	}

	e.compNames[c.Name()] = true
	e.components = append(e.components, c)
}

// RegisterDomain makes the engine sample the reset of a domain every cycle.
// Domains of registered components are found automatically.
func (e *SerialEngine) RegisterDomain(d *Domain) {
	for _, known := range e.domains {
		if known == d {
			return
		}
	}

	e.domains = append(e.domains, d)
}

// Components returns the registered components in evaluation order.
func (e *SerialEngine) Components() []Component {
	return e.components
}

// Tick evaluates one cycle.
func (e *SerialEngine) Tick() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	e.tick()
}

func (e *SerialEngine) tick() {
	now := e.readNow()

	hookCtx := HookCtx{
		Domain: e,
		Pos:    HookPosBeforeTick,
		Item:   now,
	}
	e.InvokeHook(hookCtx)

	for _, c := range e.components {
		c.Propagate()
	}

	for i := len(e.components) - 1; i >= 0; i-- {
		e.components[i].Backpressure()
	}

	for _, c := range e.components {
		if d := c.ResetDomain(); d != nil {
			e.RegisterDomain(d)
		}
	}

	for _, d := range e.domains {
		d.sample()
	}

	hookCtx.Pos = HookPosSettled
	e.InvokeHook(hookCtx)

	progress := false
	for _, c := range e.components {
		if c.Tick() {
			progress = true
		}
	}

	for _, c := range e.components {
		reset := c.ResetDomain() != nil && c.ResetDomain().Asserted()
		for _, r := range c.Regs() {
			r.commit(reset)
		}
	}

	e.writeNow(now + 1)

	hookCtx.Pos = HookPosAfterTick
	hookCtx.Detail = progress
	e.InvokeHook(hookCtx)
}

// Run evaluates the given number of cycles.
func (e *SerialEngine) Run(cycles uint64) error {
	for i := uint64(0); i < cycles; i++ {
		e.Tick()
	}

	return nil
}

// RunUntil evaluates cycles until done returns true or limit cycles have
// passed.
func (e *SerialEngine) RunUntil(done func() bool, limit uint64) error {
	for i := uint64(0); i < limit; i++ {
		if done() {
			return nil
		}

		e.Tick()
	}

	if done() {
		return nil
	}

	return fmt.Errorf("%w: %d cycles", ErrCycleLimit, limit)
}

func (e *SerialEngine) readNow() VTimeInCycle {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()
	return t
}

func (e *SerialEngine) writeNow(t VTimeInCycle) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Pause prevents the SerialEngine to evaluate more cycles.
func (e *SerialEngine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue allows the SerialEngine to evaluate more cycles.
func (e *SerialEngine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}

// CurrentCycle returns the number of cycles evaluated so far.
func (e *SerialEngine) CurrentCycle() VTimeInCycle {
	return e.readNow()
}

// CurrentTime returns the simulated time of the current cycle.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	return e.freq.Time(e.readNow())
}
