package bisect

import "github.com/thiagokokada/bisect-go/internal/git"

// Semantic tags appended to log entries.
const (
	TagCurrent = "bisect-current"
	TagGood    = "bisect-good"
	TagBad     = "bisect-bad"
)

// Names of the synthetic refs shown next to real branches and tags.
const (
	RefCurrent = "(current)"
	RefGood    = "(good)"
	RefBad     = "(bad)"
)

// Snapshot is the slice of repository state the annotations depend on.
// Head is "" for an unborn HEAD.
type Snapshot struct {
	State State
	Head  string
}

func identity(e git.Entry) git.Entry { return e }

// Annotator returns the transform that tags log entries with the bisect
// markers that apply to them, in the order current, good, bad. Without an
// active session it is the identity. Input entries are never mutated: a new
// tag slice is built whenever tags are added.
func Annotator(s Snapshot) func(git.Entry) git.Entry {
	if !s.State.Active {
		return identity
	}
	return func(e git.Entry) git.Entry {
		hash := e.Hash()
		if hash == "" {
			return e
		}
		var extra []string
		if hash == s.Head {
			extra = append(extra, TagCurrent)
		}
		if hash == s.State.Good {
			extra = append(extra, TagGood)
		}
		if hash == s.State.Bad {
			extra = append(extra, TagBad)
		}
		if len(extra) == 0 {
			return e
		}
		tags := make([]string, 0, len(e.Tags)+len(extra))
		tags = append(tags, e.Tags...)
		e.Tags = append(tags, extra...)
		return e
	}
}

// AnnotateEntries applies Annotator(s) to every entry and returns a new slice.
func AnnotateEntries(s Snapshot, entries []git.Entry) []git.Entry {
	annotate := Annotator(s)
	out := make([]git.Entry, len(entries))
	for i, e := range entries {
		out[i] = annotate(e)
	}
	return out
}

// SyntheticRefs returns the display-only refs for the session: (current) is
// always present while bisecting, even with an unborn HEAD, followed by
// (good) and (bad) when those boundaries are known.
func SyntheticRefs(s Snapshot) []git.Ref {
	if !s.State.Active {
		return nil
	}
	refs := []git.Ref{{Name: RefCurrent, Kind: git.RefKindTag, Hash: s.Head, Synthetic: true}}
	if s.State.Good != "" {
		refs = append(refs, git.Ref{Name: RefGood, Kind: git.RefKindTag, Hash: s.State.Good, Synthetic: true})
	}
	if s.State.Bad != "" {
		refs = append(refs, git.Ref{Name: RefBad, Kind: git.RefKindTag, Hash: s.State.Bad, Synthetic: true})
	}
	return refs
}
