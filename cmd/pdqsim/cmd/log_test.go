package cmd_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdqlab/pdqcore/cmd/pdqsim/cmd"
)

var _ = Describe("Logger", func() {
	DescribeTable("parsing levels",
		func(name string, expected cmd.LogLevel) {
			level, err := cmd.ParseLogLevel(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(level).To(Equal(expected))
		},
		Entry("error", "error", cmd.ErrorLevel),
		Entry("warning", "warning", cmd.WarningLevel),
		Entry("info", "INFO", cmd.InfoLevel),
		Entry("debug", "debug", cmd.DebugLevel),
	)

	It("should reject unknown levels", func() {
		_, err := cmd.NewLogger(new(bytes.Buffer), "loud")
		Expect(err).To(MatchError(cmd.ErrInvalidLogLevel))
	})

	It("should filter by level", func() {
		buf := new(bytes.Buffer)
		l, err := cmd.NewLogger(buf, "warning")
		Expect(err).NotTo(HaveOccurred())

		l.Infof("hidden %d", 1)
		l.Debugf("hidden %d", 2)
		l.Warningf("shown %d", 3)
		l.Errorf("shown %d", 4)

		Expect(buf.String()).NotTo(ContainSubstring("hidden"))
		Expect(buf.String()).To(ContainSubstring("[pdqsim] "))
		Expect(buf.String()).To(ContainSubstring("[warn] shown 3"))
		Expect(buf.String()).To(ContainSubstring("[error] shown 4"))
		Expect(l.TraceLogger()).To(BeNil())
	})

	It("should give a trace logger when debugging", func() {
		buf := new(bytes.Buffer)
		l, err := cmd.NewLogger(buf, "debug")
		Expect(err).NotTo(HaveOccurred())

		l.TraceLogger().Print("cycle")
		Expect(buf.String()).To(Equal("[pdqsim] [debug] cycle\n"))
	})
})
