package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

type gitCLI struct {
	path string
}

// CommandError reports a git invocation that failed to start or exited
// with a non-zero status.
type CommandError struct {
	Args     []string
	ExitCode int // -1 when the process could not be started
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	label := "git"
	if len(e.Args) > 0 {
		label = "git " + e.Args[0]
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", label, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", label, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func OpenCLI(repoPath string) (Backend, error) {
	if err := ensureMinGitVersion(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	tmp := &gitCLI{path: abs}
	root, err := tmp.runGitCommand(context.Background(), []string{"rev-parse", "--show-toplevel"}, false)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("open repository: git rev-parse returned empty root")
	}
	return &gitCLI{path: root}, nil
}

func (g *gitCLI) RepoPath() string {
	if g == nil {
		return ""
	}
	return g.path
}

func (g *gitCLI) Run(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("git command not specified")
	}
	return g.runGitCommand(ctx, args, false)
}

func (g *gitCLI) runGitCommand(ctx context.Context, args []string, allowExit1 bool) (string, error) {
	if g == nil || g.path == "" {
		return "", fmt.Errorf("repository root not set")
	}
	cmdArgs := append([]string{"-C", g.path}, args...)
	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		isExit := errors.As(err, &exitErr)
		if allowExit1 && isExit && exitErr.ExitCode() == 1 && stderr.Len() == 0 {
			// exit code 1 without stderr is a "no match" answer for rev-parse/show-ref
			return stdout.String(), nil
		}
		code := -1
		if isExit {
			code = exitErr.ExitCode()
		}
		return "", &CommandError{
			Args:     args,
			ExitCode: code,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}
	return stdout.String(), nil
}
