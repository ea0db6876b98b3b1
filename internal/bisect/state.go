// Package bisect derives the state of a git bisect session from the
// append-only "git bisect log" text and projects it onto the log view.
package bisect

import (
	"regexp"
	"slices"
	"strings"
)

// State is recomputed from scratch on every refresh and never patched.
// Good and Bad are full commit ids, "" when no boundary was recorded yet;
// both are always "" when Active is false.
type State struct {
	Active bool
	Good   string
	Bad    string
}

var (
	// "git bisect log" comments: "# good: [<hash>] <subject>".
	goodPattern = regexp.MustCompile(`good: \[([a-f0-9]{40})\]`)
	badPattern  = regexp.MustCompile(`bad: \[([a-f0-9]{40})\]`)

	// Replayable command lines, the only form some git versions write.
	goodFallbackPattern = regexp.MustCompile(`git bisect good ([a-f0-9]{40})\b`)
	badFallbackPattern  = regexp.MustCompile(`git bisect bad ([a-f0-9]{40})\b`)
)

// Parse reconstructs the session state from the full bisect log. The log is
// oldest-first, so lines are reversed and the first match of each kind is
// the most recent boundary. A missing kind is not an error.
func Parse(logText string) State {
	lines := strings.Split(logText, "\n")
	slices.Reverse(lines)
	newestFirst := strings.Join(lines, "\n")

	return State{
		Active: true,
		Good:   matchWithFallback(newestFirst, goodPattern, goodFallbackPattern),
		Bad:    matchWithFallback(newestFirst, badPattern, badFallbackPattern),
	}
}

func matchWithFallback(log string, primary, fallback *regexp.Regexp) string {
	m := primary.FindStringSubmatch(log)
	if m == nil {
		m = fallback.FindStringSubmatch(log)
	}
	if m == nil {
		return ""
	}
	return m[1]
}
