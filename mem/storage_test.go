package mem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdqlab/pdqcore/mem"
)

var _ = Describe("Storage", func() {
	var storage *mem.Storage

	BeforeEach(func() {
		storage = mem.MustNewStorage(mem.DefaultDepth)
	})

	It("should reject an empty memory", func() {
		_, err := mem.NewStorage(0)
		Expect(err).To(MatchError(mem.ErrInvalidDepth))
	})

	It("should read zeros before any write", func() {
		Expect(storage.Depth()).To(Equal(8192))
		Expect(storage.Read(100)).To(Equal(uint16(0)))
		Expect(storage.Written()).To(BeEmpty())
	})

	It("should read back written words", func() {
		storage.Write(10, 0xbeef)
		storage.Write(11, 0x1234)

		Expect(storage.ReadRange(9, 4)).
			To(Equal([]uint16{0, 0xbeef, 0x1234, 0}))
	})

	It("should wrap addresses modulo the depth", func() {
		small := mem.MustNewStorage(16)
		small.Write(17, 0xaaaa)

		Expect(small.Read(1)).To(Equal(uint16(0xaaaa)))
	})

	It("should report written ranges across units", func() {
		for a := uint16(510); a <= 514; a++ {
			storage.Write(a, a)
		}
		storage.Write(1000, 1)

		Expect(storage.Written()).To(Equal([]mem.Range{
			{First: 510, Last: 514},
			{First: 1000, Last: 1000},
		}))
	})

	It("should clear on reset", func() {
		storage.Write(1, 1)
		storage.Reset()

		Expect(storage.Read(1)).To(Equal(uint16(0)))
		Expect(storage.Written()).To(BeEmpty())
	})
})
