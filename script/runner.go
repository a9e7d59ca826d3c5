package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// A Runner runs a script with an interpreter.
type Runner struct {
	logger      *slog.Logger
	executor    CommandExecutor
	interpreter string
	out         io.Writer
}

// NewRunner creates a Runner.
// The output of a successful run is written to out.
func NewRunner(logger *slog.Logger, ce CommandExecutor, interpreter string, out io.Writer) *Runner {
	return &Runner{logger: logger, executor: ce, interpreter: interpreter, out: out}
}

// Run runs the script at path and returns its error output if it exits with a
// non-zero exit code. It returns an empty string if the script succeeds.
// It errors if the interpreter could not be started.
func (r *Runner) Run(ctx context.Context, path string) (string, error) {
	e, err := r.executor.Execute(ctx, r.interpreter, path)
	if err != nil {
		return "", fmt.Errorf("could not start %s: %w", r.interpreter, err)
	}
	if !e.Succeeded() {
		r.logger.Debug("script failed", "exit_code", e.ExitCode)
		if e.Stderr == "" {
			return fmt.Sprintf("exit status %d", e.ExitCode), nil
		}
		return e.Stderr, nil
	}
	if e.Stdout != "" {
		if _, err := io.WriteString(r.out, e.Stdout); err != nil {
			return "", err
		}
	}
	return "", nil
}
