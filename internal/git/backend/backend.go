package backend

import "context"

// Backend abstracts access to repository data and to the git tool itself.
//
// The default implementation shells out to the git executable. The native
// implementation reads HEAD, refs and remotes through go-git and only spawns
// git for commands that mutate the repository (bisect start/good/bad/reset).
type Backend interface {
	RepoPath() string

	// Run invokes git with args inside the repository and returns stdout.
	// A non-zero exit is reported as *CommandError.
	Run(ctx context.Context, args ...string) (string, error)
	StartLogStream(ctx context.Context, fromHash string) (LogStream, error)

	HeadState(ctx context.Context) (hash string, headName string, ok bool, err error)
	ListRefs(ctx context.Context) ([]Ref, error)
	RemoteURL(ctx context.Context, name string) (string, error)
}

type LogStream interface {
	Next() (*Commit, error)
	Close() error
}

type Kind string

const (
	KindCLI    Kind = "gitcli"
	KindNative Kind = "native"
)

// Open returns the backend implementation selected by kind. An empty kind
// selects the CLI backend.
func Open(kind Kind, repoPath string) (Backend, error) {
	switch kind {
	case KindNative:
		return OpenNative(repoPath)
	default:
		return OpenCLI(repoPath)
	}
}
