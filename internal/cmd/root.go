package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	outputFormat string
	configPath   string
	rootDir      string
	noColor      bool
	verbose      bool
	quiet        bool
)

// plugcheckVersion is set by Execute for the version command.
var plugcheckVersion string

func Execute(version, commit, date string) error {
	plugcheckVersion = version

	rootCmd := &cobra.Command{
		Use:   "plugcheck",
		Short: "Structural validation for Claude Code plugin bundles",
		Long: `plugcheck validates the structural integrity of a Claude Code plugin
bundle: plugin manifests, hook configs, command/skill/agent frontmatter,
JSON schema templates, MCP server manifests, and permission files.

Checks are grouped into named suites; run them all or pick a subset.`,
		Version:      version,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to Checkfile")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Bundle root to validate (overrides Checkfile)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (summaries only)")

	// Add subcommands
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd(commit, date))
	rootCmd.AddCommand(newCompletionCmd())

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.Execute()
}
