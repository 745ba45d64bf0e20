package sim

// A Stream is a flow-controlled point-to-point link. The producer drives
// Valid and Data, the consumer drives Ready. A transfer happens in the cycle
// in which both Valid and Ready are true. Both sides drive their signals
// again every cycle; nothing carries over between cycles.
type Stream[T any] struct {
	name string

	Valid bool
	Data  T
	Ready bool
}

// NewStream creates a stream with the given name.
func NewStream[T any](name string) *Stream[T] {
	NameMustBeValid(name)

	return &Stream[T]{name: name}
}

// Name returns the name of the stream.
func (s *Stream[T]) Name() string {
	return s.name
}

// Drive sets the producer side of the stream.
func (s *Stream[T]) Drive(valid bool, data T) {
	s.Valid = valid
	s.Data = data
}

// Accept sets the consumer side of the stream.
func (s *Stream[T]) Accept(ready bool) {
	s.Ready = ready
}

// Fire tells if a transfer happens in the current cycle.
func (s *Stream[T]) Fire() bool {
	return s.Valid && s.Ready
}

// Stalled tells if the producer offers data that the consumer refuses.
func (s *Stream[T]) Stalled() bool {
	return s.Valid && !s.Ready
}
