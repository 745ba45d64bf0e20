// Package control decodes the command channel into control registers and
// stretches the reset requests.
package control

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned when a command name cannot be recognized.
var ErrUnknownCommand = errors.New("control: unknown command")

// A Command is one byte of the command channel.
type Command byte

// The commands the dispatcher decodes. 0x01 is not decoded.
const (
	CmdResetEnable   Command = 0x00
	CmdTriggerEnable Command = 0x02
	CmdTriggerDis    Command = 0x03
	CmdArmEnable     Command = 0x04
	CmdArmDis        Command = 0x05
	CmdDCMEnable     Command = 0x06
	CmdDCMDis        Command = 0x07
	CmdStartEnable   Command = 0x08
	CmdStartDis      Command = 0x09
)

var commandNames = map[Command]string{
	CmdResetEnable:   "RESET_EN",
	CmdTriggerEnable: "TRIGGER_EN",
	CmdTriggerDis:    "TRIGGER_DIS",
	CmdArmEnable:     "ARM_EN",
	CmdArmDis:        "ARM_DIS",
	CmdDCMEnable:     "DCM_EN",
	CmdDCMDis:        "DCM_DIS",
	CmdStartEnable:   "START_EN",
	CmdStartDis:      "START_DIS",
}

// Commands returns all decoded commands in increasing order.
func Commands() []Command {
	return []Command{
		CmdResetEnable,
		CmdTriggerEnable, CmdTriggerDis,
		CmdArmEnable, CmdArmDis,
		CmdDCMEnable, CmdDCMDis,
		CmdStartEnable, CmdStartDis,
	}
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Command(0x%02x)", byte(c))
}

// Known tells if the dispatcher decodes the command.
func (c Command) Known() bool {
	_, ok := commandNames[c]
	return ok
}

// ParseCommand returns the command with the given name. The name is not
// case sensitive.
func ParseCommand(name string) (Command, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for cmd, n := range commandNames {
		if n == upper {
			return cmd, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}
