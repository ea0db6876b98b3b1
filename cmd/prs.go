package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/bisect-go/internal/repository"
	"github.com/thiagokokada/bisect-go/internal/view"
)

func (a *app) prsCmd() *cobra.Command {
	var remote string
	var limit int
	c := &cobra.Command{
		Use:   "prs",
		Short: "List open pull requests of the GitHub remote",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			if remote == "" {
				remote = a.cfg.ResolvedRemote()
			}
			if limit <= 0 {
				limit = a.cfg.ResolvedForgeLimit()
			}
			token, err := a.cfg.ResolvedToken()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			client, err := a.newForgeClient(ctx, token)
			if err != nil {
				return fmt.Errorf("forge client: %w", err)
			}
			snap := &repository.Snapshot{Path: svc.RepoPath()}
			if err := snap.LoadForge(ctx, svc, client, remote, limit); err != nil {
				return err
			}
			return a.printer().RenderStatus(c.OutOrStdout(), snap, []view.Section{view.PullRequestSection{}})
		},
	}
	c.Flags().StringVar(&remote, "remote", "", "git remote pointing at GitHub (default from config, else origin)")
	c.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of pull requests (default from config, else 10)")
	return c
}
