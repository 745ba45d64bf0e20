package escape_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdqlab/pdqcore/escape"
)

var _ = Describe("Stuffing", func() {
	It("should double escape bytes in data", func() {
		out := escape.AppendData(nil, []byte{1, 0xA5, 2})

		Expect(out).To(Equal([]byte{1, 0xA5, 0xA5, 2}))
	})

	It("should prefix commands", func() {
		out, err := escape.AppendCommand([]byte{9}, 0x04)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]byte{9, 0xA5, 0x04}))
	})

	It("should reject the escape byte as a command", func() {
		out, err := escape.AppendCommand([]byte{9}, 0xA5)

		Expect(err).To(MatchError(escape.ErrEscapeCommand))
		Expect(out).To(Equal([]byte{9}))
	})

	It("should use the escape byte of the stuffer", func() {
		s := escape.Stuffer{Escape: 0x7E}

		Expect(s.AppendData(nil, []byte{0x7E, 0xA5})).
			To(Equal([]byte{0x7E, 0x7E, 0xA5}))
	})
})
