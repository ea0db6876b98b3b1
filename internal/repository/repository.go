// Package repository assembles everything the views show about a repository
// into one snapshot.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/thiagokokada/bisect-go/internal/bisect"
	"github.com/thiagokokada/bisect-go/internal/forge"
	"github.com/thiagokokada/bisect-go/internal/git"
)

type Options struct {
	LogLimit int
}

// Snapshot is rebuilt from scratch by every Load.
type Snapshot struct {
	Path     string
	Head     string // "" for an unborn HEAD
	HeadName string
	Bisect   bisect.State
	Log      []git.Entry
	// Refs holds the real refs followed by the synthetic bisect refs.
	Refs  []git.Ref
	Forge *forge.State
}

func (s *Snapshot) BisectSnapshot() bisect.Snapshot {
	return bisect.Snapshot{State: s.Bisect, Head: s.Head}
}

// RefLabels returns the decoration labels of every commit id.
func (s *Snapshot) RefLabels() map[string][]string {
	return git.RefLabels(s.Refs, s.Head, s.HeadName)
}

// Load reads HEAD, refs, bisect state and the commit log. Failing to read
// the bisect state is never fatal; it shows as an inactive session.
func Load(ctx context.Context, svc *git.Service, opts Options) (*Snapshot, error) {
	head, headName, _, err := svc.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	refs, err := svc.Refs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	entries, err := svc.Log(ctx, opts.LogLimit)
	if err != nil {
		return nil, fmt.Errorf("load log: %w", err)
	}

	snap := &Snapshot{
		Path:     svc.RepoPath(),
		Head:     head,
		HeadName: headName,
		Bisect:   bisect.CurrentState(ctx, svc),
	}
	bs := snap.BisectSnapshot()
	snap.Log = bisect.AnnotateEntries(bs, entries)
	snap.Refs = slices.Concat(refs, bisect.SyntheticRefs(bs))
	slog.Debug("snapshot loaded",
		slog.String("head", head),
		slog.Bool("bisecting", snap.Bisect.Active),
		slog.Int("entries", len(snap.Log)),
	)
	return snap, nil
}

// LoadForge attaches the open pull requests of remote to s. Errors are
// returned so callers can decide whether a missing forge is fatal.
func (s *Snapshot) LoadForge(ctx context.Context, svc *git.Service, client *forge.Client, remote string, limit int) error {
	url, err := svc.RemoteURL(ctx, remote)
	if err != nil {
		return fmt.Errorf("remote url: %w", err)
	}
	st, err := forge.Load(ctx, client, url, limit)
	if err != nil {
		return err
	}
	s.Forge = st
	return nil
}
