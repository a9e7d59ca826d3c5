package script

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
)

// An Execution is the outcome of a process that ran to completion.
type Execution struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports whether the process exited with a zero exit code.
func (e Execution) Succeeded() bool {
	return e.ExitCode == 0
}

// A ProcessExecutor runs programs and captures their output.
type ProcessExecutor struct {
	logger *slog.Logger
	dir    string
}

// NewProcessExecutor creates a ProcessExecutor.
// Programs execute in the working directory specified with dir.
func NewProcessExecutor(logger *slog.Logger, dir string) *ProcessExecutor {
	return &ProcessExecutor{logger: logger, dir: dir}
}

// Execute runs the program name with args and waits for it to exit.
// Stdout and stderr are captured separately. A non-zero exit code is reported
// in the Execution; an error is returned only if the program could not be
// run.
func (p *ProcessExecutor) Execute(ctx context.Context, name string, args ...string) (Execution, error) {
	p.logger.Info("executing command", "command", name, "args", args)
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = p.dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	e := Execution{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e.ExitCode = exitErr.ExitCode()
		return e, nil
	}
	return e, err
}
