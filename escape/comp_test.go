package escape_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdqlab/pdqcore/escape"
	"github.com/pdqlab/pdqcore/sim"
	"github.com/pdqlab/pdqcore/sim/simtest"
)

var _ = Describe("Demux", func() {
	var (
		engine *sim.SerialEngine
		in     *sim.Stream[byte]
		demux  *escape.Comp
		sinkA  *simtest.Sink[byte]
		sinkB  *simtest.Sink[byte]
		src    *simtest.Source[byte]
	)

	build := func(items ...byte) {
		engine = sim.NewSerialEngine()
		in = sim.NewStream[byte]("In")
		src = simtest.NewSource("Source", in, items...)
		demux = escape.MakeBuilder().WithInput(in).Build("Demux")
		sinkA = simtest.NewSink("SinkA", demux.OutputA())
		sinkB = simtest.NewSink("SinkB", demux.OutputB())

		engine.RegisterComponent(src)
		engine.RegisterComponent(demux)
		engine.RegisterComponent(sinkA)
		engine.RegisterComponent(sinkB)
	}

	It("should panic without an input", func() {
		Expect(func() { escape.MakeBuilder().Build("Demux") }).To(Panic())
	})

	It("should pass plain bytes to channel A", func() {
		build(1, 2, 3, 4)

		Expect(engine.RunUntil(src.Done, 20)).To(Succeed())

		Expect(sinkA.Received()).To(Equal([]byte{1, 2, 3, 4}))
		Expect(sinkB.Received()).To(BeEmpty())
	})

	It("should split an escaped stream", func() {
		build(1, 2, 0xA5, 3, 4, 0xA5, 0xA5, 5, 6, 0xA5, 0xA5, 0xA5, 7, 8,
			0xA5, 0xA5, 0xA5, 0xA5, 9, 10)

		Expect(engine.RunUntil(src.Done, 100)).To(Succeed())

		Expect(sinkA.Received()).To(Equal([]byte{
			1, 2, 4, 0xA5, 5, 6, 0xA5, 8, 0xA5, 0xA5, 9, 10}))
		Expect(sinkB.Received()).To(Equal([]byte{3, 7}))
		Expect(demux.Escaped()).To(BeFalse())
	})

	It("should give the same split when both sides stall", func() {
		build(1, 2, 0xA5, 3, 4, 0xA5, 0xA5, 5, 6, 0xA5, 0xA5, 0xA5, 7, 8,
			0xA5, 0xA5, 0xA5, 0xA5, 9, 10)
		src.WithPattern(simtest.EveryNth(2))
		sinkA.WithPattern(simtest.EveryNth(3))
		sinkB.WithPattern(simtest.EveryNth(5))

		Expect(engine.RunUntil(src.Done, 500)).To(Succeed())

		Expect(sinkA.Received()).To(Equal([]byte{
			1, 2, 4, 0xA5, 5, 6, 0xA5, 8, 0xA5, 0xA5, 9, 10}))
		Expect(sinkB.Received()).To(Equal([]byte{3, 7}))
	})

	It("should remember a trailing escape byte", func() {
		build(1, 0xA5)

		Expect(engine.RunUntil(src.Done, 20)).To(Succeed())

		Expect(sinkA.Received()).To(Equal([]byte{1}))
		Expect(demux.Escaped()).To(BeTrue())
	})

	It("should stall the input when channel A is not ready", func() {
		build(1, 0xA5, 3)
		sinkA.WithPattern(func(uint64) bool { return false })

		Expect(engine.Run(20)).To(Succeed())

		Expect(src.Sent()).To(Equal(0))
		Expect(sinkB.Received()).To(BeEmpty())
	})

	It("should stall the input when channel B is not ready", func() {
		build(0xA5, 3, 4)
		sinkB.WithPattern(func(uint64) bool { return false })

		Expect(engine.Run(20)).To(Succeed())

		Expect(src.Sent()).To(Equal(1))
		Expect(demux.Escaped()).To(BeTrue())
		Expect(sinkA.Received()).To(BeEmpty())
	})

	It("should use a custom escape byte", func() {
		engine = sim.NewSerialEngine()
		in = sim.NewStream[byte]("In")
		src = simtest.NewSource[byte]("Source", in, 0xA5, 0x7E, 0x01, 0x7E, 0x7E)
		demux = escape.MakeBuilder().WithInput(in).WithEscape(0x7E).
			Build("Demux")
		sinkA = simtest.NewSink("SinkA", demux.OutputA())
		sinkB = simtest.NewSink("SinkB", demux.OutputB())
		engine.RegisterComponent(src)
		engine.RegisterComponent(demux)
		engine.RegisterComponent(sinkA)
		engine.RegisterComponent(sinkB)

		Expect(engine.RunUntil(src.Done, 20)).To(Succeed())

		Expect(demux.Escape()).To(Equal(byte(0x7E)))
		Expect(sinkA.Received()).To(Equal([]byte{0xA5, 0x7E}))
		Expect(sinkB.Received()).To(Equal([]byte{0x01}))
	})
})
