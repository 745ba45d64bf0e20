package sim

import (
	"sync"
)

// A Component is a clocked element. The engine calls Propagate on every
// component in registration order, then Backpressure in reverse order, then
// Tick, and finally commits all the registers at once.
type Component interface {
	Named
	Hookable
	RegHolder

	// Propagate drives forward signals (valid, data, output pins) from the
	// registers and from the upstream signals of the current cycle.
	Propagate()

	// Backpressure drives ready signals from the downstream ready signals
	// and the registers.
	Backpressure()

	// Tick schedules the register values of the next cycle. It returns true
	// if the component made progress.
	Tick() bool

	// ResetDomain returns the domain that resets the component, or nil.
	ResetDomain() *Domain
}

// ComponentBase provides some functions that other component can use.
type ComponentBase struct {
	HookableBase
	sync.Mutex

	name   string
	regs   []Latch
	domain *Domain
}

// NewComponentBase creates a new ComponentBase
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	c := new(ComponentBase)
	c.name = name

	return c
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// AddReg attaches a register to the component.
func (c *ComponentBase) AddReg(l Latch) {
	c.regs = append(c.regs, l)
}

// Regs returns the registers of the component.
func (c *ComponentBase) Regs() []Latch {
	return c.regs
}

// ResetDomain returns the domain that resets the component.
func (c *ComponentBase) ResetDomain() *Domain {
	return c.domain
}

func (c *ComponentBase) joinDomain(d *Domain) {
	c.domain = d
}

// Propagate does nothing. Components without forward signals can rely on it.
func (c *ComponentBase) Propagate() {}

// Backpressure does nothing. Components without ready signals can rely on it.
func (c *ComponentBase) Backpressure() {}
