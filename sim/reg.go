package sim

// A Latch is a register that takes a new value at the cycle boundary.
type Latch interface {
	commit(reset bool)
}

// RegHolder owns registers and hands them to the engine.
type RegHolder interface {
	AddReg(l Latch)
	Regs() []Latch
}

// Reg is a clocked register. Get returns the value of the current cycle. Set
// schedules the value of the next cycle. A register that is not Set keeps
// its value. When Set is called several times in one cycle, the last call
// wins.
type Reg[T any] struct {
	q    T
	d    T
	init T
}

// NewReg creates a register with the given reset value and attaches it to
// the holder.
func NewReg[T any](holder RegHolder, init T) *Reg[T] {
	r := &Reg[T]{q: init, d: init, init: init}
	holder.AddReg(r)

	return r
}

// Get returns the current value.
func (r *Reg[T]) Get() T {
	return r.q
}

// Next returns the value scheduled for the next cycle.
func (r *Reg[T]) Next() T {
	return r.d
}

// Set schedules v as the value of the next cycle.
func (r *Reg[T]) Set(v T) {
	r.d = v
}

// Init returns the reset value.
func (r *Reg[T]) Init() T {
	return r.init
}

func (r *Reg[T]) commit(reset bool) {
	if reset {
		r.q = r.init
	} else {
		r.q = r.d
	}

	r.d = r.q
}
