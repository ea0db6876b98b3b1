package backend

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// native answers the read-only queries issued on every refresh (HEAD, refs,
// remotes) with go-git and delegates everything else to the git executable.
type native struct {
	cli  *gitCLI
	repo *gitlib.Repository
}

func OpenNative(repoPath string) (Backend, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	root := abs
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return newNative(repo, root), nil
}

func newNative(repo *gitlib.Repository, root string) *native {
	return &native{cli: &gitCLI{path: root}, repo: repo}
}

func (n *native) RepoPath() string {
	return n.cli.RepoPath()
}

func (n *native) Run(ctx context.Context, args ...string) (string, error) {
	if err := ensureMinGitVersion(); err != nil {
		return "", err
	}
	return n.cli.Run(ctx, args...)
}

func (n *native) StartLogStream(ctx context.Context, fromHash string) (LogStream, error) {
	if err := ensureMinGitVersion(); err != nil {
		return nil, err
	}
	return n.cli.StartLogStream(ctx, fromHash)
}

func (n *native) HeadState(context.Context) (hash string, headName string, ok bool, err error) {
	ref, err := n.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("resolve HEAD: %w", err)
	}
	headName = "HEAD"
	if ref.Name().IsBranch() {
		headName = ref.Name().Short()
	}
	return ref.Hash().String(), headName, true, nil
}

func (n *native) ListRefs(context.Context) ([]Ref, error) {
	iter, err := n.repo.References()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var refs []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		kind, short, ok := classifyRefName(ref.Name().String())
		if !ok {
			return nil
		}
		hash := ref.Hash()
		if kind == RefKindTag {
			// Annotated tags point at a tag object; peel to the commit.
			if tag, err := n.repo.TagObject(hash); err == nil {
				hash = tag.Target
			}
		}
		refs = append(refs, Ref{Hash: hash.String(), Kind: kind, Name: short})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func (n *native) RemoteURL(_ context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("remote not specified")
	}
	remote, err := n.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}
