package tracing

import (
	"log"
	"sync"

	"github.com/pdqlab/pdqcore/datarecording"
	"github.com/pdqlab/pdqcore/memwriter"
	"github.com/pdqlab/pdqcore/sim"
)

// WriteTracer records the write-enable trace of memory writers.
type WriteTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder
	logger     *log.Logger

	words   uint64
	written uint64
}

// NewWriteTracer creates a WriteTracer. The backend and the logger are
// both optional.
func NewWriteTracer(
	timeTeller sim.TimeTeller,
	backend datarecording.DataRecorder,
	logger *log.Logger,
) *WriteTracer {
	return &WriteTracer{
		timeTeller: timeTeller,
		backend:    backend,
		logger:     logger,
	}
}

// Func records one payload word.
func (t *WriteTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != memwriter.HookPosMemWrite {
		return
	}

	we := ctx.Item.(memwriter.WriteEnable)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.words++
	if we.Enabled {
		t.written++
	}

	entry := datarecording.MemWrite{
		Cycle:    uint64(t.timeTeller.CurrentCycle()),
		Location: locationOf(ctx),
		Dest:     we.Dest,
		Address:  we.Address,
		Data:     we.Data,
		Enabled:  we.Enabled,
	}

	if t.backend != nil {
		t.backend.RecordMemWrite(entry)
	}

	if t.logger != nil {
		t.logger.Printf("%d, %s, dest %d, 0x%04x <- 0x%04x, we=%t",
			entry.Cycle, entry.Location, entry.Dest,
			entry.Address, entry.Data, entry.Enabled)
	}
}

// Words returns the number of payload words seen.
func (t *WriteTracer) Words() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.words
}

// Written returns the number of payload words written into a memory.
func (t *WriteTracer) Written() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.written
}
