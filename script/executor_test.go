package script_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/acrmp/autoscript/script"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
)

var _ = Describe("ProcessExecutor", func() {

	var (
		dir       string
		executor  *script.ProcessExecutor
		logger    *slog.Logger
		logOutput *gbytes.Buffer
		ctx       context.Context
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "exec")
		Expect(err).ToNot(HaveOccurred())

		logOutput = gbytes.NewBuffer()
		logger = slog.New(slog.NewTextHandler(logOutput, nil))
		ctx = context.Background()

		executor = script.NewProcessExecutor(logger, dir)
	})

	AfterEach(func() {
		err := os.RemoveAll(dir)
		Expect(err).ToNot(HaveOccurred())
	})

	It("executes the provided program with its arguments", func() {
		e, err := executor.Execute(ctx, "printf", "%s %s", "hello", "world")
		Expect(err).ToNot(HaveOccurred())
		Expect(e.Stdout).To(Equal("hello world"))
		Expect(e.ExitCode).To(Equal(0))
		Expect(e.Succeeded()).To(BeTrue())
	})

	It("logs that it is executing the command", func() {
		_, err := executor.Execute(ctx, "printf", "hello world")
		Expect(err).ToNot(HaveOccurred())
		Expect(logOutput).To(gbytes.Say(`executing command.*printf`))
	})

	It("captures stdout and stderr separately", func() {
		e, err := executor.Execute(ctx, "sh", "-c", "printf 'hello'\nprintf 'world' >&2\n")
		Expect(err).ToNot(HaveOccurred())
		Expect(e.Stdout).To(Equal("hello"))
		Expect(e.Stderr).To(Equal("world"))
	})

	It("uses the directory as the working directory", func() {
		_, err := executor.Execute(ctx, "sh", "-c", "printf 'hello world' > some-file")
		Expect(err).ToNot(HaveOccurred())

		b, err := os.ReadFile(filepath.Join(dir, "some-file"))
		Expect(err).ToNot(HaveOccurred())

		Expect(string(b)).To(Equal("hello world"))
	})

	Context("when the program exits with a non-zero exit code", func() {
		It("reports the exit code and the captured output", func() {
			e, err := executor.Execute(ctx, "sh", "-c", "printf 'still captured' >&2; exit 3")
			Expect(err).ToNot(HaveOccurred())
			Expect(e.ExitCode).To(Equal(3))
			Expect(e.Succeeded()).To(BeFalse())
			Expect(e.Stderr).To(Equal("still captured"))
		})
	})

	Context("when the program does not exist", func() {
		It("errors", func() {
			_, err := executor.Execute(ctx, filepath.Join(dir, "no-such-program"))
			Expect(err).To(HaveOccurred())
		})
	})
})
