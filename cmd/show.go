package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/bisect-go/internal/highlight"
)

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [rev]",
		Short: "Show a commit with syntax highlighted diff (default HEAD)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			rev := "HEAD"
			if len(args) == 1 {
				rev = args[0]
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			text, err := svc.Show(c.Context(), rev)
			if err != nil {
				return fmt.Errorf("show %s: %w", rev, err)
			}
			if !a.colorEnabled() {
				_, err := fmt.Fprint(c.OutOrStdout(), text)
				return err
			}
			return highlight.Diff(c.OutOrStdout(), text, a.dark())
		},
	}
}
