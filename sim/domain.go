package sim

import "log"

// A ResetSource tells if a reset is requested in the current cycle.
type ResetSource interface {
	Reset() bool
}

// ResetFunc adapts a function to the ResetSource interface.
type ResetFunc func() bool

// Reset calls f().
func (f ResetFunc) Reset() bool {
	return f()
}

type domainMember interface {
	Component
	joinDomain(d *Domain)
}

// Domain is a group of components that share one synchronous reset. When
// the reset source is asserted in a cycle, every register of every member
// takes its initial value at the end of that cycle.
type Domain struct {
	name     string
	source   ResetSource
	members  []Component
	asserted bool
}

// NewDomain creates a new Domain
func NewDomain(name string) *Domain {
	NameMustBeValid(name)

	d := new(Domain)
	d.name = name

	return d
}

// Name returns the name of the domain.
func (d *Domain) Name() string {
	return d.name
}

// SetResetSource defines what drives the reset of the domain. A domain
// without a source is never reset.
func (d *Domain) SetResetSource(src ResetSource) {
	d.source = src
}

// AddComponent makes a component a member of the domain. A component can
// only belong to one domain.
func (d *Domain) AddComponent(c Component) {
	m, ok := c.(domainMember)
	if !ok {
		log.Panicf("component %s cannot join a reset domain", c.Name())
	}

	if m.ResetDomain() != nil && m.ResetDomain() != d {
		log.Panicf("component %s already belongs to domain %s",
			c.Name(), m.ResetDomain().Name())
	}

	m.joinDomain(d)
	d.members = append(d.members, c)
}

// Members returns the components of the domain.
func (d *Domain) Members() []Component {
	return d.members
}

// Asserted tells if the reset was sampled as asserted in the current cycle.
func (d *Domain) Asserted() bool {
	return d.asserted
}

func (d *Domain) sample() {
	d.asserted = d.source != nil && d.source.Reset()
}
