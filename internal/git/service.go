package git

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	gitbackend "github.com/thiagokokada/bisect-go/internal/git/backend"
)

const (
	DefaultLogLimit = 256
	DefaultRemote   = "origin"
)

type Service struct {
	// mu serializes tool invocations; the host runs one command at a time
	// but watch-triggered refreshes can overlap with them.
	mu sync.Mutex

	backend Backend
}

func Open(repoPath string, kind gitbackend.Kind) (*Service, error) {
	b, err := gitbackend.Open(kind, repoPath)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(b), nil
}

func NewWithBackend(b Backend) *Service {
	return &Service{backend: b}
}

func (s *Service) RepoPath() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.RepoPath()
}

func (s *Service) ready() error {
	if s.backend == nil || s.backend.RepoPath() == "" {
		return fmt.Errorf("repository root not set")
	}
	return nil
}

// Run invokes git with args in the repository and returns its stdout.
func (s *Service) Run(ctx context.Context, args ...string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Debug("git run", slog.String("args", strings.Join(args, " ")))
	return s.backend.Run(ctx, args...)
}

// Head returns the commit id HEAD points at and its symbolic name ("HEAD"
// when detached). ok is false for an unborn branch.
func (s *Service) Head(ctx context.Context) (hash string, name string, ok bool, err error) {
	if err := s.ready(); err != nil {
		return "", "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.backend.HeadState(ctx)
}

func (s *Service) Refs(ctx context.Context) ([]Ref, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.backend.ListRefs(ctx)
}

func (s *Service) RemoteURL(ctx context.Context, name string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultRemote
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.backend.RemoteURL(ctx, name)
}

// Show returns the "git show" text (header, message and patch) for rev.
func (s *Service) Show(ctx context.Context, rev string) (string, error) {
	rev = strings.TrimSpace(rev)
	if rev == "" {
		return "", fmt.Errorf("commit not specified")
	}
	return s.Run(ctx, "show", "--no-color", "--stat", "--patch", rev)
}
