package git

import gitbackend "github.com/thiagokokada/bisect-go/internal/git/backend"

type (
	Signature = gitbackend.Signature
	Commit    = gitbackend.Commit
	Ref       = gitbackend.Ref
	RefKind   = gitbackend.RefKind
	Backend   = gitbackend.Backend
)

const (
	RefKindBranch       = gitbackend.RefKindBranch
	RefKindRemoteBranch = gitbackend.RefKindRemoteBranch
	RefKindTag          = gitbackend.RefKindTag
)

// Entry is one commit of the log view. Tags carries semantic labels used to
// drive highlighting; annotators append to it and never remove from it.
type Entry struct {
	Commit  *Commit
	Summary string
	Tags    []string
}

// Hash returns the commit id of the entry, or "" for an empty entry.
func (e Entry) Hash() string {
	if e.Commit == nil {
		return ""
	}
	return e.Commit.Hash
}
