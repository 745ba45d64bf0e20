package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// ErrInvalidLogLevel is returned for log levels that are not known.
var ErrInvalidLogLevel = errors.New("invalid log level")

// LogLevel selects which messages are printed.
type LogLevel int

// The log levels, from the quietest.
const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
)

const (
	LogPrefix     = "[pdqsim] "
	ErrorPrefix   = "[error] "
	WarningPrefix = "[warn] "
	InfoPrefix    = "[info] "
	DebugPrefix   = "[debug] "
	HelpLevels    = "Must be one of: error, warning, info, debug."
)

var levelMapping = map[string]LogLevel{
	"error":   ErrorLevel,
	"warning": WarningLevel,
	"info":    InfoLevel,
	"debug":   DebugLevel,
}

// ParseLogLevel converts a level name.
func ParseLogLevel(s string) (LogLevel, error) {
	level, ok := levelMapping[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("%w %q. %s", ErrInvalidLogLevel, s, HelpLevels)
	}

	return level, nil
}

// A Logger filters messages by level.
type Logger struct {
	level LogLevel
	*log.Logger
}

// NewLogger creates a Logger that writes to out.
func NewLogger(out io.Writer, level string) (*Logger, error) {
	l, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	return &Logger{
		level:  l,
		Logger: log.New(out, LogPrefix, log.LstdFlags),
	}, nil
}

// Level returns the level of the logger.
func (l *Logger) Level() LogLevel {
	return l.level
}

// TraceLogger returns a logger for the cycle traces, or nil when debugging
// is off.
func (l *Logger) TraceLogger() *log.Logger {
	if l.level < DebugLevel {
		return nil
	}

	return log.New(l.Writer(), LogPrefix+DebugPrefix, 0)
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.level >= ErrorLevel {
		l.Println(fmt.Sprintf(ErrorPrefix+format, v...))
	}
}

func (l *Logger) Warningf(format string, v ...any) {
	if l.level >= WarningLevel {
		l.Println(fmt.Sprintf(WarningPrefix+format, v...))
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.level >= InfoLevel {
		l.Println(fmt.Sprintf(InfoPrefix+format, v...))
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.level >= DebugLevel {
		l.Println(fmt.Sprintf(DebugPrefix+format, v...))
	}
}
