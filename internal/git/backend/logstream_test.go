package backend

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseGitLogRecord(t *testing.T) {
	t.Parallel()

	rec := bytes.Join([][]byte{
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		[]byte("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb cccccccccccccccccccccccccccccccccccccccc"),
		[]byte("Alice"),
		[]byte("alice@example.com"),
		[]byte("2024-01-02T03:04:05Z"),
		[]byte("Bob"),
		[]byte("bob@example.com"),
		[]byte("2024-01-02T03:05:06Z"),
		[]byte("Subject line\n\nBody line\n"),
	}, []byte("\n"))

	commit, err := parseGitLogRecord(rec)
	require.NoError(t, err)
	require.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", commit.Hash)
	require.Equal(t, []string{
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"cccccccccccccccccccccccccccccccccccccccc",
	}, commit.ParentHashes)
	require.Equal(t, Signature{Name: "Alice", Email: "alice@example.com", When: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}, commit.Author)
	require.Equal(t, Signature{Name: "Bob", Email: "bob@example.com", When: time.Date(2024, 1, 2, 3, 5, 6, 0, time.UTC)}, commit.Committer)
	require.Equal(t, "Subject line\n\nBody line\n", commit.Message)
}

func TestParseGitLogRecord_EmptyMessage(t *testing.T) {
	t.Parallel()

	rec := []byte("h\n\nan\nae\n2024-01-02T03:04:05Z\ncn\nce\n2024-01-02T03:04:05Z\n")
	commit, err := parseGitLogRecord(rec)
	require.NoError(t, err)
	require.Empty(t, commit.Message)
	require.Empty(t, commit.ParentHashes)
}

func TestParseGitLogRecord_ShortRecord(t *testing.T) {
	t.Parallel()

	_, err := parseGitLogRecord([]byte("only\ntwo\nlines"))
	require.Error(t, err)
}

func TestTrimLogRecord(t *testing.T) {
	t.Parallel()

	require.Equal(t, []byte("h\nrest"), trimLogRecord([]byte("\nh\nrest\x00")))
	require.Equal(t, []byte("h"), trimLogRecord([]byte("\r\nh\x00")))
	require.Empty(t, trimLogRecord([]byte("\n\x00")))
}
