package bisect

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	gitbackend "github.com/thiagokokada/bisect-go/internal/git/backend"
)

// Runner invokes the git tool inside a repository. *git.Service satisfies it.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// LogStatus classifies the outcome of reading the bisect log.
type LogStatus int

const (
	// LogOpen means the log was read; a session is in progress.
	LogOpen LogStatus = iota
	// LogNotBisecting means git answered that no session is open.
	LogNotBisecting
	// LogFailed covers every other failure of the query.
	LogFailed
)

func (s LogStatus) String() string {
	switch s {
	case LogOpen:
		return "open"
	case LogNotBisecting:
		return "not-bisecting"
	default:
		return "failed"
	}
}

// LogResult is the outcome of "git bisect log". "No session" is a regular
// status rather than an error so it can be told apart from real faults.
type LogResult struct {
	Status LogStatus
	Text   string
	Err    error
}

// State maps the result onto a session state. Only LogOpen produces an
// active state; both failure statuses collapse into the inactive value.
func (r LogResult) State() State {
	if r.Status != LogOpen {
		return State{}
	}
	return Parse(r.Text)
}

// QueryLog runs git bisect log and classifies the result.
func QueryLog(ctx context.Context, r Runner) LogResult {
	out, err := r.Run(ctx, "bisect", "log")
	switch {
	case err == nil:
		return LogResult{Status: LogOpen, Text: out}
	case IsNotBisecting(err):
		return LogResult{Status: LogNotBisecting, Err: err}
	default:
		return LogResult{Status: LogFailed, Err: err}
	}
}

// IsNotBisecting reports whether err is git refusing "bisect log" because no
// session is open ("We are not bisecting.").
func IsNotBisecting(err error) bool {
	var cmdErr *gitbackend.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.ExitCode <= 0 {
		return false
	}
	return strings.Contains(strings.ToLower(cmdErr.Stderr), "not bisecting")
}

// CurrentState returns the bisect state of the repository behind r. It never
// fails: every query failure is logged and reported as an inactive session.
func CurrentState(ctx context.Context, r Runner) State {
	res := QueryLog(ctx, r)
	switch res.Status {
	case LogNotBisecting:
		slog.Debug("no bisect session")
	case LogFailed:
		slog.Warn("bisect log query failed", slog.Any("error", res.Err))
	}
	return res.State()
}
