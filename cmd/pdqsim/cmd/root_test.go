package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/pdqlab/pdqcore/cmd/pdqsim/cmd"
	"github.com/pdqlab/pdqcore/control"
)

type report struct {
	Cycles    uint64            `yaml:"cycles"`
	Bytes     int               `yaml:"bytes"`
	Sent      int               `yaml:"sent"`
	ClockMHz  float64           `yaml:"clock_mhz"`
	Registers control.Registers `yaml:"registers"`
	Memories  []struct {
		Channel int      `yaml:"channel"`
		Ranges  []string `yaml:"ranges"`
		Words   int      `yaml:"words"`
	} `yaml:"memories"`
}

var _ = Describe("Root command", func() {
	var (
		dir    string
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	)

	run := func(args ...string) error {
		stdout.Reset()
		stderr.Reset()

		root := cmd.NewRootCommand(stdout)
		root.SetErr(stderr)
		root.SetArgs(append(args,
			"--env-file", filepath.Join(dir, "missing.env")))

		return root.Execute()
	}

	writeProgram := func(src string) string {
		path := filepath.Join(dir, "prog.yaml")
		Expect(os.WriteFile(path, []byte(src), 0o644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		stdout = new(bytes.Buffer)
		stderr = new(bytes.Buffer)
	})

	It("should list the commands", func() {
		Expect(run("commands")).To(Succeed())

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		Expect(lines).To(HaveLen(len(control.Commands())))
		Expect(lines[0]).To(Equal("0x00 RESET_EN"))
		Expect(lines).To(ContainElement("0x06 DCM_EN"))
	})

	It("should encode a program next to it by default", func() {
		prog := writeProgram("steps:\n  - commands: [arm_en]\n")

		Expect(run("encode", prog)).To(Succeed())

		stream, err := os.ReadFile(filepath.Join(dir, "prog.bin"))
		Expect(err).NotTo(HaveOccurred())
		Expect(stream).To(Equal([]byte{0xa5, 0x04}))
		Expect(stderr.String()).To(ContainSubstring("wrote 2 bytes"))
	})

	It("should replay an encoded program", func() {
		prog := writeProgram(`
steps:
  - commands: [dcm_en, arm_en]
  - write: {board: 0, channel: 1, start: 0x10, words: [0xa5a5, 2, 3]}
  - write: {board: 1, channel: 0, start: 0x20, words: [4]}
`)
		stream := filepath.Join(dir, "prog.stream")
		Expect(run("encode", prog, "-o", stream)).To(Succeed())
		Expect(run("replay", stream, "--fixed-delays")).To(Succeed())

		var r report
		Expect(yaml.Unmarshal(stdout.Bytes(), &r)).To(Succeed())

		info, err := os.Stat(stream)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Bytes).To(Equal(int(info.Size())))
		Expect(r.Sent).To(Equal(r.Bytes))
		Expect(r.Cycles).To(BeNumerically(">", 0))
		Expect(r.ClockMHz).To(BeNumerically("==", 100))
		Expect(r.Registers.Arm).To(BeTrue())
		Expect(r.Registers.ClockSelect).To(BeTrue())
		Expect(r.Memories).To(HaveLen(1))
		Expect(r.Memories[0].Channel).To(Equal(1))
		Expect(r.Memories[0].Ranges).To(Equal([]string{"0x0010-0x0012"}))
		Expect(r.Memories[0].Words).To(Equal(3))
	})

	It("should listen to the board from the flags", func() {
		prog := writeProgram(`
steps:
  - write: {board: 1, channel: 0, start: 0x20, words: [4]}
`)
		stream := filepath.Join(dir, "prog.stream")
		Expect(run("encode", prog, "-o", stream)).To(Succeed())
		Expect(run("replay", stream, "--board", "1", "--seed", "11")).
			To(Succeed())

		var r report
		Expect(yaml.Unmarshal(stdout.Bytes(), &r)).To(Succeed())
		Expect(r.Memories).To(HaveLen(1))
		Expect(r.Memories[0].Ranges).To(Equal([]string{"0x0020-0x0020"}))
	})

	It("should fail when the cycle limit is too short", func() {
		prog := writeProgram("steps:\n  - commands: [arm_en]\n")
		stream := filepath.Join(dir, "prog.stream")
		Expect(run("encode", prog, "-o", stream)).To(Succeed())

		err := run("replay", stream, "--cycles", "10")
		Expect(err).To(MatchError(ContainSubstring("cycle limit")))
	})

	It("should report bad inputs", func() {
		Expect(run("replay", filepath.Join(dir, "nothing.bin"))).
			NotTo(Succeed())
		Expect(run("commands", "--log-level", "loud")).
			To(MatchError(cmd.ErrInvalidLogLevel))
		Expect(run("replay", writeProgram(""), "--board-bits", "14")).
			NotTo(Succeed())
	})
})
