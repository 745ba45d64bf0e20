package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when an environment default cannot be parsed.
var ErrInvalidConfig = errors.New("invalid configuration")

// The environment variables that provide defaults for the flags.
const (
	EnvLogLevel    = "PDQSIM_LOG_LEVEL"
	EnvBoard       = "PDQSIM_BOARD"
	EnvBoardBits   = "PDQSIM_BOARD_BITS"
	EnvSeed        = "PDQSIM_SEED"
	EnvCycleLimit  = "PDQSIM_CYCLE_LIMIT"
	EnvMonitorPort = "PDQSIM_MONITOR_PORT"
)

// DefaultEnvFile is read when no other file is given.
const DefaultEnvFile = ".env"

// Config holds the defaults of the command line flags.
type Config struct {
	LogLevel    string
	Board       uint16
	BoardBits   int
	Seed        int64
	CycleLimit  uint64
	MonitorPort int
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		BoardBits:  4,
		Seed:       1,
		CycleLimit: 10_000_000,
	}
}

// LoadConfig reads the defaults from an env file and the process
// environment. The process environment wins. A missing file is not an
// error.
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()

	env := map[string]string{}
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			env = fileEnv
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := env[key]

		return v, ok
	}

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	if v, ok := lookup(EnvBoard); ok {
		n, err := strconv.ParseUint(v, 0, 16)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvBoard, v)
		}
		cfg.Board = uint16(n)
	}

	if v, ok := lookup(EnvBoardBits); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvBoardBits, v)
		}
		cfg.BoardBits = n
	}

	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSeed, v)
		}
		cfg.Seed = n
	}

	if v, ok := lookup(EnvCycleLimit); ok {
		n, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvCycleLimit, v)
		}
		cfg.CycleLimit = n
	}

	if v, ok := lookup(EnvMonitorPort); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvMonitorPort, v)
		}
		cfg.MonitorPort = n
	}

	return cfg, nil
}
