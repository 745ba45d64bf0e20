package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/pdqlab/pdqcore/control"
	"github.com/pdqlab/pdqcore/sim"
)

var _ = Describe("Stretcher", func() {
	var (
		mockCtrl  *gomock.Controller
		engine    *sim.SerialEngine
		trigger   *MockTriggerSource
		stretcher *control.Stretcher
		triggerAt map[sim.VTimeInCycle]bool
	)

	BeforeEach(func() {
		var err error

		mockCtrl = gomock.NewController(GinkgoT())
		engine = sim.NewSerialEngine()
		triggerAt = make(map[sim.VTimeInCycle]bool)

		trigger = NewMockTriggerSource(mockCtrl)
		trigger.EXPECT().ResetTrigger().DoAndReturn(func() bool {
			return triggerAt[engine.CurrentCycle()]
		}).AnyTimes()

		stretcher, err = control.MakeStretcherBuilder().
			WithTrigger(trigger).WithWindow(8).Build("Stretcher")
		Expect(err).NotTo(HaveOccurred())
		engine.RegisterComponent(stretcher)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	resetAfter := func(cycles uint64) bool {
		Expect(engine.Run(cycles - uint64(engine.CurrentCycle()))).To(Succeed())
		return stretcher.Reset()
	}

	It("should reject short windows", func() {
		_, err := control.MakeStretcherBuilder().WithWindow(1).Build("S")
		Expect(err).To(MatchError(control.ErrInvalidWindow))
	})

	It("should default to 128 cycles", func() {
		s, err := control.MakeStretcherBuilder().Build("S")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Window()).To(Equal(128))
	})

	It("should assert the reset after power on", func() {
		Expect(stretcher.Reset()).To(BeTrue())
		Expect(resetAfter(6)).To(BeTrue())
		Expect(resetAfter(7)).To(BeFalse())
		Expect(resetAfter(20)).To(BeFalse())
		Expect(stretcher.Counter()).To(Equal(7))
	})

	It("should stretch a trigger", func() {
		triggerAt[20] = true

		Expect(resetAfter(20)).To(BeFalse())
		Expect(resetAfter(21)).To(BeTrue())
		Expect(resetAfter(27)).To(BeTrue())
		Expect(resetAfter(28)).To(BeFalse())
	})

	It("should restart the window on a second trigger", func() {
		triggerAt[20] = true
		triggerAt[25] = true

		Expect(resetAfter(28)).To(BeTrue())
		Expect(resetAfter(32)).To(BeTrue())
		Expect(resetAfter(33)).To(BeFalse())
	})

	It("should hold the reset while the trigger stays high", func() {
		for c := sim.VTimeInCycle(10); c < 40; c++ {
			triggerAt[c] = true
		}

		Expect(resetAfter(39)).To(BeTrue())
		Expect(resetAfter(40)).To(BeTrue())
		Expect(resetAfter(46)).To(BeTrue())
		Expect(resetAfter(47)).To(BeFalse())
	})
})
