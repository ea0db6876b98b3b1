package highlight

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestDiffPathFromLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{line: "other", want: "", wantOK: false},
		{line: "diff --git", want: "", wantOK: false},
		{line: "diff --git ", want: "", wantOK: true},
		{line: "diff --git a/foo b/foo", want: "foo", wantOK: true},
		{line: `diff --git "a/foo bar" "b/foo bar"`, want: "foo bar", wantOK: true},
	}
	for _, tc := range tests {
		got, ok := diffPathFromLine(tc.line)
		require.Equal(t, tc.wantOK, ok, tc.line)
		require.Equal(t, tc.want, got, tc.line)
	}
}

func TestDiffLineCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line      string
		wantCode  string
		wantMatch bool
	}{
		{line: "", wantMatch: false},
		{line: "diff --git a/x b/x", wantMatch: false},
		{line: "+foo", wantCode: "foo", wantMatch: true},
		{line: "-bar", wantCode: "bar", wantMatch: true},
		{line: " baz", wantCode: "baz", wantMatch: true},
		{line: "+++ b/x", wantMatch: false},
		{line: "--- a/x", wantMatch: false},
		{line: `\ No newline at end of file`, wantMatch: false},
	}
	for _, tc := range tests {
		code, off, ok := diffLineCode(tc.line)
		require.Equal(t, tc.wantMatch, ok, tc.line)
		if ok {
			require.Equal(t, tc.wantCode, code)
			require.Equal(t, 1, off)
		}
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	const show = `commit 0123456789abcdef0123456789abcdef01234567
Author: Kal-El <superman@example.com>

    Fix bisect

diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 package main
-func old() {}
+func fixed() {}
`
	for _, dark := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, Diff(&buf, show, dark))
		out := buf.String()
		require.Regexp(t, ansi, out)
		require.Equal(t, show, ansi.ReplaceAllString(out, ""))
	}
}

func TestDiff_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Diff(&buf, "", false))
	require.Empty(t, buf.String())
}
