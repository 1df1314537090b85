package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"plugcheck/internal/suites"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available check suites",
		Long:  `List prints every check suite in its default run order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range suites.All() {
				fmt.Printf("%-20s %s\n", s.Name, s.Description)
			}
			return nil
		},
	}
}
