// Package cmd implements the bisect-go command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thiagokokada/bisect-go/internal/bisect"
	"github.com/thiagokokada/bisect-go/internal/config"
	"github.com/thiagokokada/bisect-go/internal/forge"
	"github.com/thiagokokada/bisect-go/internal/git"
	gitbackend "github.com/thiagokokada/bisect-go/internal/git/backend"
	"github.com/thiagokokada/bisect-go/internal/theme"
	"github.com/thiagokokada/bisect-go/internal/tui"
	"github.com/thiagokokada/bisect-go/internal/view"
)

func Run() error {
	return run(context.Background(), os.Args[1:], newApp(os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, a *app) error {
	root := a.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app carries the global flags and the constructors the commands use; tests
// replace the constructors.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	repoPath   string
	configPath string
	backend    string
	verbose    bool

	cfg config.Config

	openService    func(path string, kind gitbackend.Kind) (*git.Service, error)
	newForgeClient func(ctx context.Context, token string) (*forge.Client, error)
	newPresenter   func(in io.Reader, out io.Writer) bisect.Presenter
	newChooser     func(in io.Reader, out io.Writer, refs func(context.Context) ([]string, error)) bisect.RefChooser
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:          in,
		out:         out,
		errOut:      errOut,
		openService: git.Open,
		newForgeClient: func(ctx context.Context, token string) (*forge.Client, error) {
			return forge.NewClient(ctx, token), nil
		},
		newPresenter: func(in io.Reader, out io.Writer) bisect.Presenter {
			return tui.NewPresenter(in, out)
		},
		newChooser: func(in io.Reader, out io.Writer, refs func(context.Context) ([]string, error)) bisect.RefChooser {
			return tui.NewChooser(in, out, refs)
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bisect-go",
		Short:         "Drive git bisect from the terminal",
		Long:          "bisect-go shows the state of a git bisect session next to the commit log and runs start, good, bad and reset for you.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.repoPath, "repo", "C", ".", "path to the git repository")
	flags.StringVar(&a.configPath, "config", config.DefaultConfigPath(), "path to the TOML configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&a.backend, "backend", "", `git backend: "gitcli" or "native" (default from config, else gitcli)`)

	root.AddCommand(
		a.statusCmd(),
		a.logCmd(),
		a.menuCmd(),
		a.startCmd(),
		a.markCmd("good", bisect.MarkGood),
		a.markCmd("bad", bisect.MarkBad),
		a.resetCmd(),
		a.showCmd(),
		a.prsCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) setup() error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.backend == "" {
		a.backend = cfg.Backend
	}
	switch gitbackend.Kind(a.backend) {
	case "", gitbackend.KindCLI, gitbackend.KindNative:
	default:
		return fmt.Errorf("unknown backend %q", a.backend)
	}
	slog.Debug("configuration loaded",
		slog.String("path", a.configPath),
		slog.String("backend", a.backend),
	)
	return nil
}

func (a *app) service() (*git.Service, error) {
	svc, err := a.openService(a.repoPath, gitbackend.Kind(a.backend))
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return svc, nil
}

func (a *app) colorEnabled() bool {
	return a.cfg.ResolvedColor() && !color.NoColor
}

func (a *app) printer() *view.Printer {
	return view.NewPrinter(a.colorEnabled())
}

func (a *app) dark() bool {
	return theme.ParsePreference(a.cfg.ResolvedTheme()).IsDark()
}
