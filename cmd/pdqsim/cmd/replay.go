package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pdqlab/pdqcore/bus"
	"github.com/pdqlab/pdqcore/comm"
	"github.com/pdqlab/pdqcore/control"
	"github.com/pdqlab/pdqcore/escape"
	"github.com/pdqlab/pdqcore/sim"
	"github.com/pdqlab/pdqcore/simulation"
)

const (
	BoardOptionName       = "board"
	BoardBitsOptionName   = "board-bits"
	SeedOptionName        = "seed"
	FixedOptionName       = "fixed-delays"
	CyclesOptionName      = "cycles"
	EscapeOptionName      = "escape"
	MonitorOptionName     = "monitor"
	MonitorPortOptionName = "monitor-port"
	OpenOptionName        = "open"
	RecordOptionName      = "record"
)

// settleCycles are evaluated after the bus goes quiet so that the last
// bytes reach the memories.
const settleCycles = 8

type replayOptions struct {
	board       uint16
	boardBits   int
	seed        int64
	fixed       bool
	cycles      uint64
	esc         uint8
	monitor     bool
	monitorPort int
	open        bool
	record      string
}

func newReplayCommand(root *rootOptions) *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <stream-file>",
		Short: "Replay a host byte stream through the core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyDefaults(cmd, root.cfg)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			return runReplay(cmd.OutOrStdout(), root.log, opts, data)
		},
	}

	flags := cmd.Flags()
	flags.Uint16Var(&opts.board, BoardOptionName, 0,
		"Board id of the core, active high")
	flags.IntVar(&opts.boardBits, BoardBitsOptionName, 4,
		"Width of the board id")
	flags.Int64Var(&opts.seed, SeedOptionName, 1,
		"Seed of the host FIFO delays")
	flags.BoolVar(&opts.fixed, FixedOptionName, false,
		"Use the longest host FIFO delays")
	flags.Uint64Var(&opts.cycles, CyclesOptionName, 0,
		"Maximum number of cycles to evaluate")
	flags.Uint8Var(&opts.esc, EscapeOptionName, escape.DefaultEscape,
		"Escape byte of the stream")
	flags.BoolVar(&opts.monitor, MonitorOptionName, false,
		"Serve the monitoring API while replaying")
	flags.IntVar(&opts.monitorPort, MonitorPortOptionName, 0,
		"Port of the monitoring server, random if not set")
	flags.BoolVar(&opts.open, OpenOptionName, false,
		"Open the monitoring server in a browser")
	flags.StringVar(&opts.record, RecordOptionName, "",
		"Record the traces into this SQLite file, without extension")

	return cmd
}

func (o *replayOptions) applyDefaults(cmd *cobra.Command, cfg Config) {
	flags := cmd.Flags()

	if !flags.Changed(BoardOptionName) {
		o.board = cfg.Board
	}

	if !flags.Changed(BoardBitsOptionName) {
		o.boardBits = cfg.BoardBits
	}

	if !flags.Changed(SeedOptionName) {
		o.seed = cfg.Seed
	}

	if !flags.Changed(CyclesOptionName) {
		o.cycles = cfg.CycleLimit
	}

	if !flags.Changed(MonitorPortOptionName) {
		o.monitorPort = cfg.MonitorPort
	}
}

type memoryReport struct {
	Channel int      `yaml:"channel"`
	Ranges  []string `yaml:"ranges"`
	Words   int      `yaml:"words"`
}

type replayReport struct {
	Cycles    uint64            `yaml:"cycles"`
	Bytes     int               `yaml:"bytes"`
	Sent      int               `yaml:"sent"`
	ClockMHz  float64           `yaml:"clock_mhz"`
	Registers control.Registers `yaml:"registers"`
	Memories  []memoryReport    `yaml:"memories,omitempty"`
}

func (o *replayOptions) buildSimulation(logger *Logger) *simulation.Simulation {
	b := simulation.MakeBuilder().WithTraceLogger(logger.TraceLogger())

	if !o.monitor {
		b = b.WithoutMonitoring()
	} else if o.monitorPort > 0 {
		b = b.WithMonitorPort(o.monitorPort)
	}

	if o.record == "" {
		b = b.WithoutRecording()
	} else {
		b = b.WithOutputFileName(o.record)
	}

	return b.Build()
}

func runReplay(
	out io.Writer,
	logger *Logger,
	opts *replayOptions,
	data []byte,
) error {
	core, err := comm.MakeBuilder().
		WithBoard(opts.board).
		WithBoardBits(opts.boardBits).
		WithEscape(opts.esc).
		Build("Comm")
	if err != nil {
		return err
	}

	s := opts.buildSimulation(logger)
	defer s.Terminate()

	s.RegisterComm(core)

	hostBuilder := bus.MakeHostFIFOBuilder().
		WithPins(core.Pins()).
		WithSeed(opts.seed)
	if opts.fixed {
		hostBuilder = hostBuilder.WithFixedDelays()
	}
	host := hostBuilder.Build("Host")
	s.RegisterComponent(host)

	host.Write(data)

	engine := s.GetEngine()
	trackProgress(s, host, len(data))

	if opts.open && s.GetMonitor() != nil {
		err = browser.OpenURL(s.GetMonitor().URL() + "/api/progress")
		if err != nil {
			logger.Warningf("cannot open browser: %v", err)
		}
	}

	logger.Infof("replaying %d bytes, board 0x%x", len(data), opts.board)

	quiet := func() bool {
		return host.Drained() &&
			!core.Reset() &&
			!core.Receiver().Reading() &&
			!core.Receiver().Pending()
	}

	err = s.Drive(func() error {
		err := engine.RunUntil(quiet, opts.cycles)
		if err != nil {
			return fmt.Errorf("replay: %w, %d of %d bytes sent",
				err, host.Sent(), len(data))
		}

		return engine.Run(settleCycles)
	})
	if err != nil {
		return err
	}

	if !core.Idle() {
		logger.Warningf("stream ends inside a transaction, writer in %s",
			core.Writer().State())
	}

	if s.OutputPath() != "" {
		logger.Infof("traces recorded in %s", s.OutputPath())
	}

	return writeReport(out, buildReport(engine, core, host, len(data)))
}

func trackProgress(s *simulation.Simulation, host *bus.HostFIFO, total int) {
	m := s.GetMonitor()
	if m == nil {
		return
	}

	bar := m.CreateProgressBar("replay", uint64(total))
	s.GetEngine().AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos != sim.HookPosAfterTick {
			return
		}

		bar.SetFinished(uint64(host.Sent()))
		if host.Drained() {
			m.CompleteProgressBar(bar)
		}
	}))
}

func buildReport(
	engine sim.Engine,
	core *comm.Comm,
	host *bus.HostFIFO,
	total int,
) replayReport {
	r := replayReport{
		Cycles:    uint64(engine.CurrentCycle()),
		Bytes:     total,
		Sent:      host.Sent(),
		ClockMHz:  float64(core.ClockFreq() / sim.MHz),
		Registers: core.Registers(),
	}

	for i := 0; i < core.NumMemories(); i++ {
		storage := core.Memory(i)
		if storage == nil {
			continue
		}

		written := storage.Written()
		if len(written) == 0 {
			continue
		}

		m := memoryReport{Channel: i}
		for _, rng := range written {
			m.Ranges = append(m.Ranges,
				fmt.Sprintf("0x%04x-0x%04x", rng.First, rng.Last))
			m.Words += int(rng.Last-rng.First) + 1
		}

		r.Memories = append(r.Memories, m)
	}

	return r
}

func writeReport(out io.Writer, r replayReport) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	err := enc.Encode(r)
	if err != nil {
		return err
	}

	return enc.Close()
}
