package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IDGenerator", func() {
	BeforeEach(func() {
		idGenerator = nil
	})

	AfterEach(func() {
		idGenerator = nil
	})

	It("should generate sequential ids by default", func() {
		g := GetIDGenerator()

		Expect(g.Generate()).To(Equal("1"))
		Expect(g.Generate()).To(Equal("2"))
	})

	It("should generate unique parallel ids", func() {
		UseParallelIDGenerator()
		g := GetIDGenerator()

		Expect(g.Generate()).NotTo(Equal(g.Generate()))
	})

	It("should not change the generator after use", func() {
		GetIDGenerator()

		Expect(UseSequentialIDGenerator).To(Panic())
	})
})
