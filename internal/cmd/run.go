package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"plugcheck/internal/config"
	"plugcheck/internal/output"
	"plugcheck/internal/plugin"
	"plugcheck/internal/runner"
	"plugcheck/internal/suites"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [suite...]",
		Short: "Run check suites against the bundle",
		Long: `Run executes the named check suites, or every suite when none are named.

A failing check never stops the run: every requested suite executes so a
single run surfaces every violation. The exit code is 1 when any suite
failed or a named suite does not exist.`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return suites.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(args)
		},
	}
	return cmd
}

// runChecks executes the run workflow.
func runChecks(names []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// 1. Resolve configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rootDir != "" {
		cfg.Root = rootDir
	}

	// 2. Fast-fail on an unusable bundle root; nothing downstream can run
	// without it.
	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: bundle root %s is not a directory\n", cfg.Root)
		os.Exit(1)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Validating bundle at %s\n", cfg.Root)
	}

	// 3. Run the suites
	env := suites.Env{
		Bundle: plugin.Bundle{Root: cfg.Root},
		Config: cfg,
	}

	var textOut io.Writer = os.Stdout
	if format != output.FormatText {
		// Structured output owns stdout; suppress the text rendering.
		textOut = io.Discard
	}

	r := &runner.Runner{
		Out:   textOut,
		Color: !noColor,
		Quiet: quiet,
	}
	report := r.Run(names, env)

	// 4. Emit structured output if requested
	if format != output.FormatText {
		if err := output.Encode(os.Stdout, format, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if report.Failed() {
		os.Exit(1)
	}
	return nil
}

// loadConfig resolves the Checkfile, falling back to defaults when none
// exists.
func loadConfig() (*config.Config, error) {
	path, err := config.FindCheckfile(configPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.Default("."), nil
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using Checkfile: %s\n", path)
	}
	return config.Load(path)
}
