package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// InstallResult is the outcome of a request to install a dependency.
type InstallResult int

const (
	Installed InstallResult = iota
	InstallDeclined
)

// A PipInstaller installs python packages after asking the user.
type PipInstaller struct {
	logger   *slog.Logger
	prompter Prompter
	executor CommandExecutor
	command  []string
	aliases  map[string]string
}

// PipCommand returns the command that installs packages for interpreter.
func PipCommand(interpreter string) []string {
	return []string{interpreter, "-m", "pip", "install"}
}

// NewPipInstaller creates a PipInstaller.
// The package name is appended to command to install it. Aliases map module
// names to the package that provides them, e.g. cv2 to opencv-python.
func NewPipInstaller(logger *slog.Logger, p Prompter, ce CommandExecutor, command []string, aliases map[string]string) *PipInstaller {
	return &PipInstaller{logger: logger, prompter: p, executor: ce, command: command, aliases: aliases}
}

// Install asks the user whether the package providing module should be
// installed and installs it if the user answers yes.
// It errors if the prompt fails or the package manager fails.
func (pi *PipInstaller) Install(ctx context.Context, module string) (InstallResult, error) {
	if len(pi.command) == 0 {
		return InstallDeclined, errors.New("no install command configured")
	}
	pkg := module
	if alias, ok := pi.aliases[module]; ok {
		pkg = alias
	}
	pi.logger.Info("the module is missing", "module", module, "package", pkg)

	answer, err := pi.prompter.Prompt(fmt.Sprintf("Should '%s' be installed? (yes/no): ", pkg))
	if err != nil {
		return InstallDeclined, err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		pi.logger.Warn("installation rejected", "package", pkg)
		return InstallDeclined, nil
	}

	pi.logger.Info("installing", "package", pkg)
	args := append(append([]string{}, pi.command[1:]...), pkg)
	e, err := pi.executor.Execute(ctx, pi.command[0], args...)
	if err != nil {
		return InstallDeclined, err
	}
	if !e.Succeeded() {
		return InstallDeclined, fmt.Errorf("%s exited with status %d: %s", pi.command[0], e.ExitCode, strings.TrimSpace(e.Stderr))
	}
	pi.logger.Info("the package was successfully installed", "package", pkg)
	return Installed, nil
}
