package tracing

import (
	"log"
	"sync"

	"github.com/pdqlab/pdqcore/control"
	"github.com/pdqlab/pdqcore/datarecording"
	"github.com/pdqlab/pdqcore/sim"
)

// CommandTracer records the commands accepted by dispatchers.
type CommandTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder
	logger     *log.Logger

	commands []control.Command
}

// NewCommandTracer creates a CommandTracer. The backend and the logger are
// both optional.
func NewCommandTracer(
	timeTeller sim.TimeTeller,
	backend datarecording.DataRecorder,
	logger *log.Logger,
) *CommandTracer {
	return &CommandTracer{
		timeTeller: timeTeller,
		backend:    backend,
		logger:     logger,
	}
}

// Func records one command.
func (t *CommandTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != control.HookPosCommand {
		return
	}

	cmd := ctx.Item.(control.Command)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.commands = append(t.commands, cmd)

	entry := datarecording.Command{
		Cycle:    uint64(t.timeTeller.CurrentCycle()),
		Location: locationOf(ctx),
		Value:    uint8(cmd),
		Name:     cmd.String(),
	}

	if t.backend != nil {
		t.backend.RecordCommand(entry)
	}

	if t.logger != nil {
		t.logger.Printf("%d, %s, %s", entry.Cycle, entry.Location, entry.Name)
	}
}

// Commands returns the commands seen so far.
func (t *CommandTracer) Commands() []control.Command {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]control.Command(nil), t.commands...)
}
