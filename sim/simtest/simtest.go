// Package simtest provides stream endpoints that drive and observe
// components in tests.
package simtest

import (
	"github.com/pdqlab/pdqcore/sim"
)

// A Pattern decides, for a cycle counted from the creation of an endpoint,
// whether the endpoint is willing to transfer.
type Pattern func(cycle uint64) bool

// Always is a Pattern that is always willing.
func Always(uint64) bool { return true }

// EveryNth returns a Pattern that is willing one cycle out of n.
func EveryNth(n uint64) Pattern {
	return func(cycle uint64) bool {
		return cycle%n == 0
	}
}

// Source offers a fixed sequence of items on a stream. Once an item is
// offered it stays offered until it is accepted.
type Source[T any] struct {
	*sim.ComponentBase

	out     *sim.Stream[T]
	items   []T
	pattern Pattern

	index *sim.Reg[int]
	held  *sim.Reg[bool]
	cycle *sim.Reg[uint64]
}

// NewSource creates a Source that drives out with the items.
func NewSource[T any](name string, out *sim.Stream[T], items ...T) *Source[T] {
	s := &Source[T]{
		ComponentBase: sim.NewComponentBase(name),
		out:           out,
		items:         items,
		pattern:       Always,
	}
	s.index = sim.NewReg(s, 0)
	s.held = sim.NewReg(s, false)
	s.cycle = sim.NewReg(s, uint64(0))

	return s
}

// WithPattern makes the source offer new items only in the cycles the
// pattern allows.
func (s *Source[T]) WithPattern(p Pattern) *Source[T] {
	s.pattern = p
	return s
}

// Push appends more items to offer.
func (s *Source[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

// Done tells if all the items have been accepted.
func (s *Source[T]) Done() bool {
	return s.index.Get() >= len(s.items)
}

// Sent returns the number of accepted items.
func (s *Source[T]) Sent() int {
	return s.index.Get()
}

// Propagate offers the next item.
func (s *Source[T]) Propagate() {
	i := s.index.Get()
	if i >= len(s.items) {
		var zero T
		s.out.Drive(false, zero)
		return
	}

	s.out.Drive(s.held.Get() || s.pattern(s.cycle.Get()), s.items[i])
}

// Tick advances to the next item after a transfer.
func (s *Source[T]) Tick() bool {
	s.cycle.Set(s.cycle.Get() + 1)
	s.held.Set(s.out.Stalled())

	if !s.out.Fire() {
		return false
	}

	s.index.Set(s.index.Get() + 1)

	return true
}

// Sink accepts items from a stream and records them.
type Sink[T any] struct {
	*sim.ComponentBase

	in       *sim.Stream[T]
	pattern  Pattern
	received []T

	cycle *sim.Reg[uint64]
}

// NewSink creates a Sink that consumes in.
func NewSink[T any](name string, in *sim.Stream[T]) *Sink[T] {
	s := &Sink[T]{
		ComponentBase: sim.NewComponentBase(name),
		in:            in,
		pattern:       Always,
	}
	s.cycle = sim.NewReg(s, uint64(0))

	return s
}

// WithPattern makes the sink ready only in the cycles the pattern allows.
func (s *Sink[T]) WithPattern(p Pattern) *Sink[T] {
	s.pattern = p
	return s
}

// Received returns the recorded items in arrival order.
func (s *Sink[T]) Received() []T {
	return s.received
}

// Backpressure drives the ready signal.
func (s *Sink[T]) Backpressure() {
	s.in.Accept(s.pattern(s.cycle.Get()))
}

// Tick records a transfer.
func (s *Sink[T]) Tick() bool {
	s.cycle.Set(s.cycle.Get() + 1)

	if !s.in.Fire() {
		return false
	}

	s.received = append(s.received, s.in.Data)

	return true
}
