package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const maxSummaryRunes = 80

// Log returns up to limit entries reachable from HEAD, newest first. An
// unborn HEAD yields no entries.
func (s *Service) Log(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	headHash, _, ok, err := s.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	if !ok {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stream, err := s.backend.StartLogStream(ctx, headHash)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, min(limit, DefaultLogLimit))
	for len(entries) < limit {
		commit, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			_ = stream.Close()
			return nil, fmt.Errorf("iterate commits: %w", err)
		}
		entries = append(entries, newEntry(commit))
	}
	// A drained stream already reported git's exit status through Next, so
	// a Close error can only come from killing git log after stopping at
	// the limit.
	if err := stream.Close(); err != nil {
		slog.Debug("git log stream close", slog.Any("error", err))
	}
	slog.Debug("log loaded", slog.Int("count", len(entries)), slog.String("head", headHash))
	return entries, nil
}

func newEntry(c *Commit) Entry {
	return Entry{Commit: c, Summary: formatSummary(c)}
}

func formatSummary(c *Commit) string {
	firstLine, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	if utf8.RuneCountInString(firstLine) <= maxSummaryRunes {
		return firstLine
	}
	runes := []rune(firstLine)
	return string(runes[:maxSummaryRunes-3]) + "..."
}

// ShortHash abbreviates a commit id for display.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
