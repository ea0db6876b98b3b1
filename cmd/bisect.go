package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/bisect-go/internal/bisect"
	"github.com/thiagokokada/bisect-go/internal/git"
	"github.com/thiagokokada/bisect-go/internal/view"
)

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive bisect menu",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			svc, err := a.service()
			if err != nil {
				return err
			}
			mc := bisect.MenuContext{
				Runner:  svc,
				Chooser: a.chooser(svc),
				State:   bisect.CurrentState(ctx, svc),
			}
			if err := bisect.ShowMenu(ctx, a.newPresenter(a.in, a.out), mc); err != nil {
				return err
			}
			return a.printBisectState(ctx, c, svc)
		},
	}
}

func (a *app) startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a bisect session",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := bisect.Start(c.Context(), svc); err != nil {
				return fmt.Errorf("bisect start: %w", err)
			}
			return a.printBisectState(c.Context(), c, svc)
		},
	}
}

// markCmd builds "good" and "bad". Without a ref argument the interactive
// chooser asks for one; cancelling it does nothing.
func (a *app) markCmd(verb string, mark func(context.Context, bisect.Runner, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " [ref]",
		Short: fmt.Sprintf("Mark a commit as %s", verb),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			svc, err := a.service()
			if err != nil {
				return err
			}
			var ref string
			if len(args) == 1 {
				ref = args[0]
			} else {
				var ok bool
				ref, ok, err = a.chooser(svc).ChooseRef(ctx, "Mark as "+verb)
				if err != nil {
					return err
				}
				if !ok {
					slog.Debug("reference choice cancelled", slog.String("verb", verb))
					return nil
				}
			}
			ref = strings.TrimSpace(ref)
			if ref == "" {
				return fmt.Errorf("bisect %s: empty reference", verb)
			}
			if err := mark(ctx, svc, ref); err != nil {
				return fmt.Errorf("bisect %s %s: %w", verb, ref, err)
			}
			return a.printBisectState(ctx, c, svc)
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "End the bisect session",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := bisect.Reset(c.Context(), svc); err != nil {
				return fmt.Errorf("bisect reset: %w", err)
			}
			return a.printBisectState(c.Context(), c, svc)
		},
	}
}

func (a *app) chooser(svc *git.Service) bisect.RefChooser {
	return a.newChooser(a.in, a.out, svc.RefNames)
}

// printBisectState reloads the session after a command and prints the
// head and bisect sections.
func (a *app) printBisectState(ctx context.Context, c *cobra.Command, svc *git.Service) error {
	snap, err := a.snapshot(ctx, svc, 1)
	if err != nil {
		return err
	}
	return a.printer().RenderStatus(c.OutOrStdout(), snap, []view.Section{view.HeadSection{}, view.BisectSection{}})
}
