package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/bisect-go/internal/git"
	"github.com/thiagokokada/bisect-go/internal/repository"
	"github.com/thiagokokada/bisect-go/internal/view"
	"github.com/thiagokokada/bisect-go/internal/watch"
)

const clearScreen = "\x1b[H\x1b[2J"

func (a *app) statusCmd() *cobra.Command {
	var follow bool
	c := &cobra.Command{
		Use:   "status",
		Short: "Show HEAD, the bisect session and open pull requests",
		Long: `Show HEAD, the bisect session and open pull requests.

Pull requests are listed when a GitHub token is configured.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			render := func(ctx context.Context, w io.Writer) error {
				snap, err := a.snapshot(ctx, svc, a.cfg.ResolvedLogLimit())
				if err != nil {
					return err
				}
				a.attachForge(ctx, svc, snap)
				return a.printer().RenderStatus(w, snap, view.DefaultSections())
			}
			if !follow {
				return render(c.Context(), c.OutOrStdout())
			}
			return a.follow(c.Context(), svc, c.OutOrStdout(), render)
		},
	}
	c.Flags().BoolVarP(&follow, "watch", "w", false, "redraw whenever the repository changes")
	return c
}

func (a *app) logCmd() *cobra.Command {
	var limit int
	var follow bool
	c := &cobra.Command{
		Use:   "log",
		Short: "Show the commit log annotated with bisect markers",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = a.cfg.ResolvedLogLimit()
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			render := func(ctx context.Context, w io.Writer) error {
				snap, err := a.snapshot(ctx, svc, limit)
				if err != nil {
					return err
				}
				return a.printer().RenderLog(w, snap)
			}
			if !follow {
				return render(c.Context(), c.OutOrStdout())
			}
			return a.follow(c.Context(), svc, c.OutOrStdout(), render)
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of commits (default from config, else 256)")
	c.Flags().BoolVarP(&follow, "watch", "w", false, "redraw whenever the repository changes")
	return c
}

func (a *app) snapshot(ctx context.Context, svc *git.Service, limit int) (*repository.Snapshot, error) {
	return repository.Load(ctx, svc, repository.Options{LogLimit: limit})
}

// attachForge adds pull requests when a token is configured. Forge failures
// only cost the section.
func (a *app) attachForge(ctx context.Context, svc *git.Service, snap *repository.Snapshot) {
	token, err := a.cfg.ResolvedToken()
	if err != nil {
		slog.Warn("forge token", slog.Any("error", err))
		return
	}
	if token == "" {
		return
	}
	client, err := a.newForgeClient(ctx, token)
	if err != nil {
		slog.Warn("forge client", slog.Any("error", err))
		return
	}
	if err := snap.LoadForge(ctx, svc, client, a.cfg.ResolvedRemote(), a.cfg.ResolvedForgeLimit()); err != nil {
		slog.Warn("load pull requests", slog.Any("error", err))
	}
}

// follow redraws on every repository change until interrupted.
func (a *app) follow(ctx context.Context, svc *git.Service, w io.Writer, render func(context.Context, io.Writer) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	redraw := func() {
		if _, err := fmt.Fprint(w, clearScreen); err != nil {
			slog.Error("redraw", slog.Any("error", err))
			return
		}
		if err := render(ctx, w); err != nil {
			slog.Error("redraw", slog.Any("error", err))
		}
	}
	redraw()
	return watch.Run(ctx, svc.RepoPath(), a.cfg.ResolvedDebounce(), redraw)
}
