package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdqlab/pdqcore/control"
)

var _ = Describe("Command", func() {
	It("should name every command", func() {
		names := make([]string, 0)
		for _, c := range control.Commands() {
			Expect(c.Known()).To(BeTrue())
			names = append(names, c.String())
		}

		Expect(names).To(Equal([]string{
			"RESET_EN", "TRIGGER_EN", "TRIGGER_DIS", "ARM_EN", "ARM_DIS",
			"DCM_EN", "DCM_DIS", "START_EN", "START_DIS",
		}))
	})

	It("should print unknown commands as hex", func() {
		Expect(control.Command(0x01).String()).To(Equal("Command(0x01)"))
		Expect(control.Command(0x01).Known()).To(BeFalse())
	})

	It("should parse names", func() {
		c, err := control.ParseCommand("arm_en")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(control.CmdArmEnable))

		c, err = control.ParseCommand("START_DIS")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(control.Command(0x09)))
	})

	It("should reject unknown names", func() {
		_, err := control.ParseCommand("RESET_DIS")
		Expect(err).To(MatchError(control.ErrUnknownCommand))
	})
})
