package escape

import (
	"errors"
	"fmt"
)

// ErrEscapeCommand is returned when a command value equals the escape byte.
// Such a command would read as a literal escape on the data channel.
var ErrEscapeCommand = errors.New("escape: command equals the escape byte")

// A Stuffer produces streams the demultiplexer splits back into the data
// and command channels.
type Stuffer struct {
	Escape byte
}

// AppendData appends data for channel A, doubling every escape byte.
func (s Stuffer) AppendData(dst []byte, data []byte) []byte {
	for _, b := range data {
		if b == s.Escape {
			dst = append(dst, s.Escape)
		}

		dst = append(dst, b)
	}

	return dst
}

// AppendCommand appends one byte for channel B.
func (s Stuffer) AppendCommand(dst []byte, cmd byte) ([]byte, error) {
	if cmd == s.Escape {
		return dst, fmt.Errorf("%w: 0x%02x", ErrEscapeCommand, cmd)
	}

	return append(dst, s.Escape, cmd), nil
}

var defaultStuffer = Stuffer{Escape: DefaultEscape}

// AppendData appends data for channel A using the default escape byte.
func AppendData(dst []byte, data []byte) []byte {
	return defaultStuffer.AppendData(dst, data)
}

// AppendCommand appends a command for channel B using the default escape
// byte.
func AppendCommand(dst []byte, cmd byte) ([]byte, error) {
	return defaultStuffer.AppendCommand(dst, cmd)
}
