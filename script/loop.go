// Package script generates a script from a task description using a LLM,
// runs it and repairs it when it fails.
package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Model
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

//counterfeiter:generate . CommandExecutor
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (Execution, error)
}

//counterfeiter:generate . FileWriter
type FileWriter interface {
	WriteFile(path, content string) error
}

//counterfeiter:generate . Prompter
type Prompter interface {
	Prompt(p string) (string, error)
}

//counterfeiter:generate . ScriptRunner
type ScriptRunner interface {
	Run(ctx context.Context, path string) (string, error)
}

//counterfeiter:generate . DependencyInstaller
type DependencyInstaller interface {
	Install(ctx context.Context, module string) (InstallResult, error)
}

// A ScriptGenerator writes a script for a task description.
type ScriptGenerator interface {
	Generate(ctx context.Context, description string) (string, error)
}

// A ScriptFixer rewrites a script that failed with diagnostic.
type ScriptFixer interface {
	Fix(ctx context.Context, description, diagnostic string) (string, error)
}

// State is a step of the generate, run and repair loop.
type State int

const (
	StateGenerated State = iota
	StateRunning
	StateSuccess
	StateMissingDependency
	StateRepairing
	StateFailed
	StateDeclined
)

func (s State) String() string {
	switch s {
	case StateGenerated:
		return "generated"
	case StateRunning:
		return "running"
	case StateSuccess:
		return "success"
	case StateMissingDependency:
		return "missing-dependency"
	case StateRepairing:
		return "repairing"
	case StateFailed:
		return "failed"
	case StateDeclined:
		return "declined"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result describes how a run of the Loop ended.
type Result struct {
	State       State
	Transitions []State
	Installs    int
	Repairs     int
	// Diagnostic is the error output of the last failed run.
	Diagnostic string
	// Reason explains a Failed or Declined state.
	Reason string
}

func (r *Result) enter(s State) {
	r.State = s
	r.Transitions = append(r.Transitions, s)
}

// A Loop generates a script, runs it and repairs it until it succeeds or
// cannot be repaired.
type Loop struct {
	logger      *slog.Logger
	scriptPath  string
	maxInstalls int
	generator   ScriptGenerator
	fixer       ScriptFixer
	fileWriter  FileWriter
	runner      ScriptRunner
	classifier  Classifier
	installer   DependencyInstaller
}

// NewLoop creates a Loop.
// The script is written to scriptPath. At most maxInstalls dependencies are
// installed during a run, zero means no limit.
func NewLoop(logger *slog.Logger, scriptPath string, maxInstalls int, g ScriptGenerator, f ScriptFixer, fw FileWriter, r ScriptRunner, c Classifier, i DependencyInstaller) *Loop {
	return &Loop{
		logger:      logger,
		scriptPath:  scriptPath,
		maxInstalls: maxInstalls,
		generator:   g,
		fixer:       f,
		fileWriter:  fw,
		runner:      r,
		classifier:  c,
		installer:   i,
	}
}

// Run generates a script for description and runs it.
// A failing script is repaired once per failure: a missing dependency is
// installed, any other error is sent back to the model for a fix. The run
// ends as failed when a fixed script still errors.
// Errors talking to the model, installing or launching the interpreter are
// returned as errors.
func (l *Loop) Run(ctx context.Context, description string) (Result, error) {
	var res Result

	l.logger.Info("generating script", "description", description)
	code, err := l.generator.Generate(ctx, description)
	if err != nil {
		return res, fmt.Errorf("could not generate script: %w", err)
	}
	if err := l.fileWriter.WriteFile(l.scriptPath, code); err != nil {
		return res, fmt.Errorf("could not write script: %w", err)
	}
	res.enter(StateGenerated)

	installed := map[string]bool{}
	repaired := false
	for {
		res.enter(StateRunning)
		l.logger.Info("running script", "path", l.scriptPath)
		diagnostic, err := l.runner.Run(ctx, l.scriptPath)
		if err != nil {
			return res, fmt.Errorf("could not run script: %w", err)
		}
		if diagnostic == "" {
			res.enter(StateSuccess)
			l.logger.Info("script was executed successfully", "installs", res.Installs, "repairs", res.Repairs)
			return res, nil
		}
		res.Diagnostic = diagnostic
		l.logger.Warn("error detected", "error", diagnostic)

		if repaired {
			res.enter(StateFailed)
			res.Reason = "the fixed script still has errors"
			l.logger.Error("the fixed script still has errors", "error", diagnostic)
			return res, nil
		}

		d := l.classifier.Classify(diagnostic)
		if d.Kind == KindMissingDependency {
			res.enter(StateMissingDependency)
			if installed[d.Dependency] {
				res.enter(StateFailed)
				res.Reason = fmt.Sprintf("module %q is still missing after installation", d.Dependency)
				l.logger.Error("module still missing after installation", "module", d.Dependency)
				return res, nil
			}
			if l.maxInstalls > 0 && res.Installs >= l.maxInstalls {
				res.enter(StateFailed)
				res.Reason = fmt.Sprintf("reached the limit of %d installations", l.maxInstalls)
				l.logger.Error("installation limit reached", "limit", l.maxInstalls, "module", d.Dependency)
				return res, nil
			}

			r, err := l.installer.Install(ctx, d.Dependency)
			if err != nil {
				return res, fmt.Errorf("could not install %q: %w", d.Dependency, err)
			}
			if r == InstallDeclined {
				res.enter(StateDeclined)
				res.Reason = fmt.Sprintf("installation of module %q rejected", d.Dependency)
				return res, nil
			}
			installed[d.Dependency] = true
			res.Installs++
			l.logger.Info("trying to run the script again")
			continue
		}

		res.enter(StateRepairing)
		l.logger.Info("attempting to fix the script")
		fixed, err := l.fixer.Fix(ctx, description, diagnostic)
		if err != nil {
			return res, fmt.Errorf("could not fix script: %w", err)
		}
		if err := l.fileWriter.WriteFile(l.scriptPath, fixed); err != nil {
			return res, fmt.Errorf("could not write script: %w", err)
		}
		res.Repairs++
		repaired = true
	}
}
