package sim

import (
	"log"
)

// A Probe exposes one stream to loggers and tracers.
type Probe interface {
	Named

	// Sample returns whether the stream transfers in the current cycle and
	// the data being transferred.
	Sample() (fired bool, data any)
}

// Sample implements Probe.
func (s *Stream[T]) Sample() (bool, any) {
	return s.Fire(), s.Data
}

// TickLogger is a hook that prints every transfer of the probed streams once
// the signals of a cycle have settled.
type TickLogger struct {
	*log.Logger

	probes []Probe
}

// NewTickLogger returns a TickLogger that writes into the logger.
func NewTickLogger(logger *log.Logger, probes ...Probe) *TickLogger {
	h := new(TickLogger)
	h.Logger = logger
	h.probes = probes

	return h
}

// Watch adds more streams to log.
func (h *TickLogger) Watch(probes ...Probe) {
	h.probes = append(h.probes, probes...)
}

// Func writes the transfers of the cycle into the logger.
func (h *TickLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosSettled {
		return
	}

	cycle, ok := ctx.Item.(VTimeInCycle)
	if !ok {
		return
	}

	for _, p := range h.probes {
		fired, data := p.Sample()
		if !fired {
			continue
		}

		h.Printf("%d, %s, 0x%x", cycle, p.Name(), data)
	}
}
