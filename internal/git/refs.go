package git

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// RefLabels groups decoration labels by commit id. The HEAD label comes
// first and remote HEAD aliases are dropped. Real tags get a "tag: " prefix;
// synthetic refs keep their bare name.
func RefLabels(refs []Ref, headHash, headName string) map[string][]string {
	labels := map[string][]string{}
	for _, ref := range refs {
		if ref.Hash == "" || ref.Name == "" {
			continue
		}
		if ref.Kind == RefKindRemoteBranch && strings.HasSuffix(ref.Name, "/HEAD") {
			continue
		}
		label := ref.Name
		if ref.Kind == RefKindTag && !ref.Synthetic {
			label = fmt.Sprintf("tag: %s", ref.Name)
		}
		labels[ref.Hash] = append(labels[ref.Hash], label)
	}
	if headHash != "" {
		label := "HEAD"
		if headName != "" && headName != "HEAD" {
			label = fmt.Sprintf("HEAD -> %s", headName)
		}
		labels[headHash] = append([]string{label}, labels[headHash]...)
	}
	return labels
}

// RefNames returns the sorted, de-duplicated local branch and tag names,
// the candidates offered when choosing a bisect boundary.
func (s *Service) RefNames(ctx context.Context) ([]string, error) {
	refs, err := s.Refs(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(refs))
	var names []string
	for _, ref := range refs {
		if ref.Synthetic || ref.Kind == RefKindRemoteBranch {
			continue
		}
		name := strings.TrimSpace(ref.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
