package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(commit, date string) *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("plugcheck version %s\n", plugcheckVersion)
			if detailed {
				fmt.Printf("commit: %s\n", commit)
				fmt.Printf("built:  %s\n", date)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include commit and build date")
	return cmd
}
