package control

import (
	"log"

	"github.com/pdqlab/pdqcore/sim"
)

// HookPosCommand is invoked for every accepted command byte. The item is
// the Command.
var HookPosCommand = &sim.HookPos{Name: "Command"}

// Pins are the external inputs of the dispatcher.
type Pins struct {
	Trigger bool
	Frame   uint8
}

// Registers is a snapshot of the control outputs.
type Registers struct {
	ResetTrigger bool `json:"reset_trigger" yaml:"reset_trigger"`
	SoftTrigger  bool `json:"soft_trigger" yaml:"soft_trigger"`
	Arm          bool `json:"arm" yaml:"arm"`
	ClockSelect  bool `json:"clock_select" yaml:"clock_select"`
	StartGate    bool `json:"start_gate" yaml:"start_gate"`

	Trigger        bool  `json:"trigger" yaml:"trigger"`
	Frame          uint8 `json:"frame" yaml:"frame"`
	ChannelTrigger bool  `json:"channel_trigger" yaml:"channel_trigger"`
	ChannelArm     bool  `json:"channel_arm" yaml:"channel_arm"`
	ChannelStart   bool  `json:"channel_start" yaml:"channel_start"`
	ChannelFrame   uint8 `json:"channel_frame" yaml:"channel_frame"`
}

// DispatcherBuilder can build dispatchers.
type DispatcherBuilder struct {
	in   *sim.Stream[byte]
	pins *Pins
}

// MakeDispatcherBuilder returns a DispatcherBuilder.
func MakeDispatcherBuilder() DispatcherBuilder {
	return DispatcherBuilder{}
}

// WithInput sets the command stream.
func (b DispatcherBuilder) WithInput(in *sim.Stream[byte]) DispatcherBuilder {
	b.in = in
	return b
}

// WithPins sets the external trigger and frame inputs.
func (b DispatcherBuilder) WithPins(p *Pins) DispatcherBuilder {
	b.pins = p
	return b
}

// Build creates a dispatcher with the given name.
func (b DispatcherBuilder) Build(name string) *Dispatcher {
	if b.in == nil {
		log.Panicf("dispatcher %s has no input stream", name)
	}

	d := &Dispatcher{
		in:   b.in,
		pins: b.pins,
	}
	if d.pins == nil {
		d.pins = &Pins{}
	}

	d.ComponentBase = sim.NewComponentBase(name)
	d.resetTrigger = sim.NewReg(d, false)
	d.softTrigger = sim.NewReg(d, false)
	d.arm = sim.NewReg(d, false)
	d.clockSelect = sim.NewReg(d, false)
	d.startGate = sim.NewReg(d, false)
	d.trigger = sim.NewReg(d, false)
	d.frame = sim.NewReg[uint8](d, 0)
	d.chTrigger = sim.NewReg(d, false)
	d.chArm = sim.NewReg(d, false)
	d.chStart = sim.NewReg(d, false)
	d.chFrame = sim.NewReg[uint8](d, 0)

	return d
}

// Dispatcher applies command bytes to the control registers. It is always
// ready. No command clears the reset trigger; only a reset of the domain
// of the dispatcher does.
type Dispatcher struct {
	*sim.ComponentBase

	in   *sim.Stream[byte]
	pins *Pins

	resetTrigger *sim.Reg[bool]
	softTrigger  *sim.Reg[bool]
	arm          *sim.Reg[bool]
	clockSelect  *sim.Reg[bool]
	startGate    *sim.Reg[bool]

	trigger   *sim.Reg[bool]
	frame     *sim.Reg[uint8]
	chTrigger *sim.Reg[bool]
	chArm     *sim.Reg[bool]
	chStart   *sim.Reg[bool]
	chFrame   *sim.Reg[uint8]
}

// Pins returns the external inputs.
func (d *Dispatcher) Pins() *Pins {
	return d.pins
}

// ResetTrigger tells if a reset has been requested.
func (d *Dispatcher) ResetTrigger() bool {
	return d.resetTrigger.Get()
}

// ClockSelect tells if the fast clock is selected.
func (d *Dispatcher) ClockSelect() bool {
	return d.clockSelect.Get()
}

// Registers returns the current control outputs.
func (d *Dispatcher) Registers() Registers {
	return Registers{
		ResetTrigger:   d.resetTrigger.Get(),
		SoftTrigger:    d.softTrigger.Get(),
		Arm:            d.arm.Get(),
		ClockSelect:    d.clockSelect.Get(),
		StartGate:      d.startGate.Get(),
		Trigger:        d.trigger.Get(),
		Frame:          d.frame.Get(),
		ChannelTrigger: d.chTrigger.Get(),
		ChannelArm:     d.chArm.Get(),
		ChannelStart:   d.chStart.Get(),
		ChannelFrame:   d.chFrame.Get(),
	}
}

// Backpressure accepts every command.
func (d *Dispatcher) Backpressure() {
	d.in.Accept(true)
}

// Tick registers the inputs and applies the accepted command.
func (d *Dispatcher) Tick() bool {
	d.trigger.Set(d.pins.Trigger)
	d.frame.Set(d.pins.Frame)

	arm := d.arm.Get()
	d.chTrigger.Set(arm && (d.trigger.Get() || d.softTrigger.Get()))
	d.chArm.Set(arm)
	d.chStart.Set(d.startGate.Get())
	d.chFrame.Set(d.frame.Get())

	if !d.in.Fire() {
		return false
	}

	cmd := Command(d.in.Data)
	d.apply(cmd)

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosCommand,
		Item:   cmd,
	})

	return true
}

func (d *Dispatcher) apply(cmd Command) {
	switch cmd {
	case CmdResetEnable:
		d.resetTrigger.Set(true)
	case CmdTriggerEnable:
		d.softTrigger.Set(true)
	case CmdTriggerDis:
		d.softTrigger.Set(false)
	case CmdArmEnable:
		d.arm.Set(true)
	case CmdArmDis:
		d.arm.Set(false)
	case CmdDCMEnable:
		d.clockSelect.Set(true)
	case CmdDCMDis:
		d.clockSelect.Set(false)
	case CmdStartEnable:
		d.startGate.Set(true)
	case CmdStartDis:
		d.startGate.Set(false)
	}
}
