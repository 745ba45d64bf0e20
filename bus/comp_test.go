package bus_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdqlab/pdqcore/bus"
	"github.com/pdqlab/pdqcore/sim"
	"github.com/pdqlab/pdqcore/sim/simtest"
)

// loopback presents a constant byte and feeds the strobe back one cycle
// late.
type loopback struct {
	*sim.ComponentBase

	pins   *bus.Pins
	strobe *sim.Reg[bool]
}

func newLoopback(pins *bus.Pins) *loopback {
	l := &loopback{
		ComponentBase: sim.NewComponentBase("Loopback"),
		pins:          pins,
	}
	l.strobe = sim.NewReg(l, false)

	return l
}

func (l *loopback) Propagate() {
	l.pins.DataAvailable = true
	l.pins.Data = 0x42
	l.pins.StrobeIn = l.strobe.Get()
}

func (l *loopback) Tick() bool {
	l.strobe.Set(l.pins.StrobeOut)
	return true
}

var _ = Describe("Receiver", func() {
	var (
		engine   *sim.SerialEngine
		pins     *bus.Pins
		receiver *bus.Comp
	)

	BeforeEach(func() {
		var err error

		engine = sim.NewSerialEngine()
		pins = &bus.Pins{}
		receiver, err = bus.MakeBuilder().WithPins(pins).Build("Receiver")
		Expect(err).NotTo(HaveOccurred())
		engine.RegisterComponent(receiver)
	})

	Context("with a fixed byte source", func() {
		BeforeEach(func() {
			engine.RegisterComponent(newLoopback(pins))
		})

		It("should follow the read timeline", func() {
			Expect(engine.Run(2)).To(Succeed())
			Expect(receiver.Reading()).To(BeFalse())

			Expect(engine.Run(1)).To(Succeed())
			Expect(receiver.Reading()).To(BeTrue())

			Expect(engine.Run(4)).To(Succeed())
			Expect(receiver.Output().Valid).To(BeFalse())

			Expect(engine.Run(1)).To(Succeed())
			Expect(receiver.Busy()).To(BeTrue())

			Expect(engine.Run(6)).To(Succeed())
			Expect(receiver.Reading()).To(BeTrue())

			Expect(engine.Run(1)).To(Succeed())
			Expect(receiver.Reading()).To(BeFalse())
		})

		It("should not read again while the byte is not taken", func() {
			Expect(engine.Run(60)).To(Succeed())

			Expect(receiver.Busy()).To(BeTrue())
			Expect(receiver.Reading()).To(BeFalse())
			Expect(pins.StrobeOut).To(BeFalse())
			Expect(receiver.Output().Data).To(Equal(byte(0x42)))
		})
	})

	Context("with the host FIFO model", func() {
		var (
			host *bus.HostFIFO
			sink *simtest.Sink[byte]
		)

		payload := func() []byte {
			data := make([]byte, 0, 40)
			for i := 0; i < 40; i++ {
				data = append(data, byte(i*7+0x50))
			}

			return data
		}

		build := func(b bus.HostFIFOBuilder) {
			host = b.WithPins(pins).Build("Host")
			sink = simtest.NewSink("Sink", receiver.Output())
			engine.RegisterComponent(host)
			engine.RegisterComponent(sink)
		}

		It("should receive every byte once with fixed delays", func() {
			build(bus.MakeHostFIFOBuilder().WithFixedDelays())
			host.Write(payload())

			Expect(engine.RunUntil(func() bool {
				return host.Drained() && len(sink.Received()) == 40
			}, 10000)).To(Succeed())

			Expect(sink.Received()).To(Equal(payload()))
		})

		for _, seed := range []int64{1, 2, 3, 42} {
			It("should receive every byte once with random delays", func() {
				build(bus.MakeHostFIFOBuilder().WithSeed(seed))
				host.Write(payload())

				Expect(engine.RunUntil(func() bool {
					return host.Drained() && len(sink.Received()) == 40
				}, 10000)).To(Succeed())

				Expect(sink.Received()).To(Equal(payload()))
			})
		}

		It("should receive every byte once through a slow consumer", func() {
			build(bus.MakeHostFIFOBuilder().WithSeed(7))
			sink.WithPattern(simtest.EveryNth(37))
			host.Write(payload())

			Expect(engine.RunUntil(func() bool {
				return host.Drained() && len(sink.Received()) == 40
			}, 20000)).To(Succeed())

			Expect(sink.Received()).To(Equal(payload()))
		})

		It("should hold the byte until it is acknowledged", func() {
			build(bus.MakeHostFIFOBuilder())
			sink.WithPattern(func(uint64) bool { return false })
			host.Write([]byte{1, 2, 3})

			Expect(engine.Run(200)).To(Succeed())

			Expect(host.Sent()).To(Equal(1))
			Expect(host.Pending()).To(Equal(2))
			Expect(receiver.Busy()).To(BeTrue())
			Expect(receiver.Output().Data).To(Equal(byte(1)))
		})
	})
})
