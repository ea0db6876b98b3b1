package backend

import (
	"context"
	"fmt"
	"strings"
)

func (g *gitCLI) HeadState(ctx context.Context) (hash string, headName string, ok bool, err error) {
	if g == nil || g.path == "" {
		return "", "", false, fmt.Errorf("repository root not set")
	}
	out, err := g.runGitCommand(ctx, []string{"rev-parse", "-q", "--verify", "HEAD"}, true)
	if err != nil {
		return "", "", false, err
	}
	hash = strings.TrimSpace(out)
	if hash == "" {
		return "", "", false, nil
	}
	// During a bisect HEAD is detached, so symbolic-ref answers with exit 1.
	ref, err := g.runGitCommand(ctx, []string{"symbolic-ref", "-q", "--short", "HEAD"}, true)
	if err != nil {
		return "", "", false, err
	}
	headName = strings.TrimSpace(ref)
	if headName == "" {
		headName = "HEAD"
	}
	return hash, headName, true, nil
}

func (g *gitCLI) ListRefs(ctx context.Context) ([]Ref, error) {
	if g == nil || g.path == "" {
		return nil, nil
	}
	out, err := g.runGitCommand(
		ctx,
		[]string{
			"--no-pager",
			"show-ref",
			"--dereference",
		},
		true,
	)
	if err != nil {
		return nil, err
	}
	return parseRefsFromShowRef(out)
}

func (g *gitCLI) RemoteURL(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("remote not specified")
	}
	out, err := g.runGitCommand(ctx, []string{"remote", "get-url", "--", name}, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func parseRefsFromShowRef(out string) ([]Ref, error) {
	type refEntry struct {
		hash string
		ref  string
	}

	peeledByTagRef := map[string]string{}
	var entries []refEntry

	for _, rawLine := range strings.Split(out, "\n") {
		line := strings.TrimRight(rawLine, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unexpected show-ref output line: %q", rawLine)
		}
		hash, refName := parts[0], parts[1]
		if base, ok := strings.CutSuffix(refName, "^{}"); ok {
			if base != "" {
				peeledByTagRef[base] = hash
			}
			continue
		}
		entries = append(entries, refEntry{hash: hash, ref: refName})
	}

	var refs []Ref
	for _, entry := range entries {
		kind, short, ok := classifyRefName(entry.ref)
		if !ok {
			continue
		}
		hash := entry.hash
		if kind == RefKindTag {
			if peeled, ok := peeledByTagRef[entry.ref]; ok && peeled != "" {
				hash = peeled
			}
		}
		refs = append(refs, Ref{Hash: hash, Kind: kind, Name: short})
	}
	return refs, nil
}

// classifyRefName maps a full ref name to its kind and short name. Refs
// outside heads/remotes/tags (notes, stash, refs/bisect/*) are skipped: the
// bisect boundaries are shown through synthetic refs instead.
func classifyRefName(refName string) (RefKind, string, bool) {
	prefixes := []struct {
		prefix string
		kind   RefKind
	}{
		{"refs/heads/", RefKindBranch},
		{"refs/remotes/", RefKindRemoteBranch},
		{"refs/tags/", RefKindTag},
	}
	for _, p := range prefixes {
		if short, ok := strings.CutPrefix(refName, p.prefix); ok {
			if short == "" {
				return 0, "", false
			}
			return p.kind, short, true
		}
	}
	return 0, "", false
}
