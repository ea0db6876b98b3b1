package backend

import "time"

type Signature struct {
	Name  string
	Email string
	When  time.Time
}

type Commit struct {
	Hash         string
	ParentHashes []string
	Author       Signature
	Committer    Signature
	Message      string
}

type RefKind uint8

const (
	RefKindBranch RefKind = iota
	RefKindRemoteBranch
	RefKindTag
)

func (k RefKind) String() string {
	switch k {
	case RefKindBranch:
		return "branch"
	case RefKindRemoteBranch:
		return "remote"
	case RefKindTag:
		return "tag"
	default:
		return "unknown"
	}
}

type Ref struct {
	Hash string
	Kind RefKind
	Name string // short name: main, origin/main, v1

	// Synthetic refs are display-only pointers (bisect boundaries). They share
	// the tag rendering path but never exist in the repository.
	Synthetic bool
}
