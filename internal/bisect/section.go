package bisect

import "github.com/thiagokokada/bisect-go/internal/git"

const (
	SectionID    = "bisecting"
	NoCommitText = "(none)"
)

// ShortHash abbreviates a boundary id, rendering NoCommitText when absent.
func ShortHash(hash string) string {
	if hash == "" {
		return NoCommitText
	}
	return git.ShortHash(hash)
}

// SectionLines renders the "Bisecting" block of the status view. It is empty
// when no session is active so the section disappears entirely.
func SectionLines(s State) []string {
	if !s.Active {
		return nil
	}
	return []string{
		"Bisecting...",
		"Good: " + ShortHash(s.Good),
		"Bad: " + ShortHash(s.Bad),
		"",
	}
}
