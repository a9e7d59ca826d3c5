/*
Autoscript asks a LLM to write a python script for a task, runs it and
repairs it when it fails.

The task is read from the arguments, or from stdin when there are none.
When the script fails because a module is missing, the user is asked
whether the package should be installed with pip. Any other failure is sent
back to the LLM once for a fix.

WARNING: It runs whatever the LLM writes without any sandbox or resource
limit. Any usage is at your own risk.

Settings are read from .env, autoscript.yaml and the environment
(AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY by default).
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/acrmp/autoscript/config"
	"github.com/acrmp/autoscript/script"
)

type flags struct {
	envFile     string
	configFile  string
	provider    string
	model       string
	interpreter string
	script      string
	dir         string
	maxInstalls int
	debug       bool
}

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))

	if err := newRootCommand(logger, level, os.Stdin, os.Stdout).Execute(); err != nil {
		logger.Error("running autoscript", "err", err)
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger, level *slog.LevelVar, in io.Reader, out io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "autoscript [task description]",
		Short: "Generate a python script with a LLM, run it and repair it until it works",
		Long: `Autoscript asks a LLM to write a python script for the task description,
runs it and repairs it when it fails.

WARNING: the generated script runs without any sandbox. Any usage is at your
own risk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.debug {
				level.Set(slog.LevelDebug)
			}
			c, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), logger, c, f.dir, args, in, out)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.envFile, "env-file", ".env", "File with environment variables to load")
	fl.StringVarP(&f.configFile, "config", "c", "autoscript.yaml", "YAML configuration file")
	fl.StringVarP(&f.provider, "provider", "p", "", "LLM provider: azure, openai or anthropic")
	fl.StringVarP(&f.model, "model", "m", "", "Model or Azure deployment name")
	fl.StringVar(&f.interpreter, "interpreter", "", "Interpreter that runs the script")
	fl.StringVar(&f.script, "script", "", "Path of the generated script, relative to --dir")
	fl.StringVarP(&f.dir, "dir", "d", ".", "Directory the script is written to and run in")
	fl.IntVar(&f.maxInstalls, "max-installs", config.Default().MaxInstalls, "Maximum number of packages installed during a run, 0 for no limit")
	fl.BoolVar(&f.debug, "debug", false, "Write debug log")

	return cmd
}

func loadConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	c, err := config.Load(f.envFile, f.configFile)
	if err != nil {
		return c, err
	}

	fl := cmd.Flags()
	if fl.Changed("provider") {
		c.UseProvider(f.provider)
	}
	if fl.Changed("model") {
		c.Model = f.model
	}
	if fl.Changed("interpreter") {
		c.Interpreter = f.interpreter
	}
	if fl.Changed("script") {
		c.Script = f.script
	}
	if fl.Changed("max-installs") {
		c.MaxInstalls = f.maxInstalls
	}
	return c, c.Validate()
}

func run(ctx context.Context, logger *slog.Logger, c config.Config, dir string, args []string, in io.Reader, out io.Writer) error {
	m, err := newModel(c)
	if err != nil {
		return fmt.Errorf("initializing model: %w", err)
	}

	prompter := script.NewTerminalPrompter(in, out)

	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		d, err := prompter.Prompt("What should the desired script do?\n-> ")
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading task description: %w", err)
		}
		description = strings.TrimSpace(d)
	}
	if description == "" {
		return errors.New("no task description given")
	}

	executor := script.NewProcessExecutor(logger, dir)
	loop := script.NewLoop(
		logger,
		c.Script,
		c.MaxInstalls,
		script.NewGenerator(logger, m, script.PythonExtractor, c.GenerateMaxTokens),
		script.NewFixer(logger, m, script.PythonExtractor, c.FixMaxTokens),
		script.NewSimpleFileWriter(logger, dir),
		script.NewRunner(logger, executor, c.Interpreter, out),
		script.ModuleNotFoundClassifier{},
		script.NewPipInstaller(logger, prompter, executor, script.PipCommand(c.Interpreter), c.PackageAliases),
	)

	res, err := loop.Run(ctx, description)
	if err != nil {
		return err
	}

	switch res.State {
	case script.StateSuccess:
		fmt.Fprintln(out, "Script was executed successfully.")
	case script.StateDeclined:
		fmt.Fprintf(out, "Script was not executed: %s.\n", res.Reason)
		return errors.New(res.Reason)
	default:
		fmt.Fprintf(out, "Script failed, %s: %s\n", res.Reason, res.Diagnostic)
	}
	return nil
}
