// Package gittest provides an in-memory git backend for tests.
package gittest

import (
	"context"
	"errors"
	"io"

	gitbackend "github.com/thiagokokada/bisect-go/internal/git/backend"
)

// Backend is a backend.Backend whose methods delegate to the func fields.
// A nil func makes the call fail. Run invocations are recorded in RunCalls.
type Backend struct {
	RootPath string

	RunFunc            func(args []string) (string, error)
	HeadStateFunc      func() (hash string, headName string, ok bool, err error)
	ListRefsFunc       func() ([]gitbackend.Ref, error)
	RemoteURLFunc      func(name string) (string, error)
	StartLogStreamFunc func(fromHash string) (gitbackend.LogStream, error)

	RunCalls [][]string
}

var _ gitbackend.Backend = (*Backend)(nil)

func (f *Backend) RepoPath() string { return f.RootPath }

func (f *Backend) Run(_ context.Context, args ...string) (string, error) {
	f.RunCalls = append(f.RunCalls, args)
	if f.RunFunc != nil {
		return f.RunFunc(args)
	}
	return "", errors.New("unexpected Run call")
}

func (f *Backend) StartLogStream(_ context.Context, fromHash string) (gitbackend.LogStream, error) {
	if f.StartLogStreamFunc != nil {
		return f.StartLogStreamFunc(fromHash)
	}
	return nil, errors.New("unexpected StartLogStream call")
}

func (f *Backend) HeadState(context.Context) (hash string, headName string, ok bool, err error) {
	if f.HeadStateFunc != nil {
		return f.HeadStateFunc()
	}
	return "", "", false, errors.New("unexpected HeadState call")
}

func (f *Backend) ListRefs(context.Context) ([]gitbackend.Ref, error) {
	if f.ListRefsFunc != nil {
		return f.ListRefsFunc()
	}
	return nil, errors.New("unexpected ListRefs call")
}

func (f *Backend) RemoteURL(_ context.Context, name string) (string, error) {
	if f.RemoteURLFunc != nil {
		return f.RemoteURLFunc(name)
	}
	return "", errors.New("unexpected RemoteURL call")
}

// LogStream yields Commits, then Err (or io.EOF when Err is nil). Close
// returns CloseErr.
type LogStream struct {
	Commits  []*gitbackend.Commit
	Err      error
	CloseErr error
	Closed   bool
}

func (s *LogStream) Next() (*gitbackend.Commit, error) {
	if len(s.Commits) == 0 {
		if s.Err != nil {
			return nil, s.Err
		}
		return nil, io.EOF
	}
	c := s.Commits[0]
	s.Commits = s.Commits[1:]
	return c, nil
}

func (s *LogStream) Close() error {
	s.Closed = true
	return s.CloseErr
}
