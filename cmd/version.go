package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/bisect-go/internal/buildinfo"
	"github.com/thiagokokada/bisect-go/internal/git"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			out := c.OutOrStdout()
			if _, err := fmt.Fprintf(out, "bisect-go %s\n", buildinfo.Read()); err != nil {
				return err
			}
			gitVersion, err := git.GitVersion()
			if err != nil {
				slog.Debug("git version", slog.Any("error", err))
				gitVersion = "git unavailable"
			}
			_, err = fmt.Fprintf(out, "%s (minimum %s)\n", gitVersion, git.MinGitVersion())
			return err
		},
	}
}
