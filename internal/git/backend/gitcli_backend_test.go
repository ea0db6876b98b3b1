package backend

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRefsFromShowRef(t *testing.T) {
	t.Parallel()

	const (
		commit1 = "1111111111111111111111111111111111111111"
		commit2 = "2222222222222222222222222222222222222222"
		tagObj  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	)

	in := strings.Join([]string{
		commit1 + " refs/heads/main",
		commit1 + " refs/remotes/origin/main",
		commit1 + " refs/remotes/origin/HEAD",
		commit2 + " refs/tags/v1.0",
		tagObj + " refs/tags/v2.0",
		commit1 + " refs/tags/v2.0^{}",
		commit2 + " refs/bisect/bad",
		commit1 + " refs/bisect/good-" + commit1,
		commit1 + " refs/stash",
		"",
	}, "\n")

	got, err := parseRefsFromShowRef(in)
	require.NoError(t, err)
	require.Len(t, got, 5)

	require.Contains(t, got, Ref{Hash: commit1, Kind: RefKindBranch, Name: "main"})
	require.Contains(t, got, Ref{Hash: commit1, Kind: RefKindRemoteBranch, Name: "origin/main"})
	require.Contains(t, got, Ref{Hash: commit1, Kind: RefKindRemoteBranch, Name: "origin/HEAD"})
	require.Contains(t, got, Ref{Hash: commit2, Kind: RefKindTag, Name: "v1.0"})
	// v2.0 should use the peeled hash.
	require.Contains(t, got, Ref{Hash: commit1, Kind: RefKindTag, Name: "v2.0"})
}

func TestParseRefsFromShowRef_InvalidLine(t *testing.T) {
	t.Parallel()

	_, err := parseRefsFromShowRef("refs/heads/main\n")
	require.Error(t, err)
}

func TestClassifyRefName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		kind  RefKind
		short string
		ok    bool
	}{
		{in: "refs/heads/feature/x", kind: RefKindBranch, short: "feature/x", ok: true},
		{in: "refs/remotes/origin/main", kind: RefKindRemoteBranch, short: "origin/main", ok: true},
		{in: "refs/tags/v1", kind: RefKindTag, short: "v1", ok: true},
		{in: "refs/heads/", ok: false},
		{in: "refs/bisect/bad", ok: false},
		{in: "HEAD", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			kind, short, ok := classifyRefName(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.kind, kind)
				require.Equal(t, tt.short, short)
			}
		})
	}
}

func TestCommandError(t *testing.T) {
	t.Parallel()

	inner := &exec.ExitError{}
	err := error(&CommandError{
		Args:     []string{"bisect", "log"},
		ExitCode: 1,
		Stderr:   "We are not bisecting.",
		Err:      inner,
	})
	require.Equal(t, "git bisect: "+inner.Error()+": We are not bisecting.", err.Error())

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	require.Equal(t, 1, cmdErr.ExitCode)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))

	noStderr := &CommandError{Args: []string{"reset"}, ExitCode: -1, Err: errors.New("boom")}
	require.Equal(t, "git reset: boom", noStderr.Error())
}

func TestGitCLIRun_RequiresArgsAndRoot(t *testing.T) {
	t.Parallel()

	_, err := (&gitCLI{path: "/repo"}).Run(t.Context())
	require.ErrorContains(t, err, "not specified")

	_, err = (&gitCLI{}).Run(t.Context(), "status")
	require.ErrorContains(t, err, "repository root not set")

	var nilCLI *gitCLI
	require.Empty(t, nilCLI.RepoPath())
}
