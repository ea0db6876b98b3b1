// Package highlight colors "git show" output for a terminal.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Diff writes text to w with ANSI colors. Headers, hunk markers and commit
// metadata go through the diff lexer; added, removed and context lines are
// highlighted with the lexer of the file they belong to.
func Diff(w io.Writer, text string, dark bool) error {
	style := styleFor(dark)
	diffLexer := chroma.Coalesce(lexerOrFallback(lexers.Get("diff")))
	var current chroma.Lexer
	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")
		if path, ok := diffPathFromLine(line); ok {
			current = nil
			if path != "" {
				current = lexerForPath(path)
			}
		}
		tokens, err := lineTokens(diffLexer, current, line)
		if err != nil {
			return fmt.Errorf("tokenise %q: %w", line, err)
		}
		tokens = append(tokens, chroma.Token{Type: chroma.Text, Value: "\n"})
		if err := formatters.TTY256.Format(w, style, chroma.Literator(tokens...)); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	return nil
}

func lineTokens(diffLexer, code chroma.Lexer, line string) ([]chroma.Token, error) {
	src, offset, ok := diffLineCode(line)
	if code == nil || !ok {
		return tokenise(diffLexer, line)
	}
	marker := chroma.Token{Type: chroma.GenericInserted, Value: line[:offset]}
	switch line[0] {
	case '-':
		marker.Type = chroma.GenericDeleted
	case ' ':
		marker.Type = chroma.Text
	}
	rest, err := tokenise(code, src)
	if err != nil {
		return nil, err
	}
	return append([]chroma.Token{marker}, rest...), nil
}

// tokenise drops the trailing newline some lexers add.
func tokenise(lexer chroma.Lexer, src string) ([]chroma.Token, error) {
	if src == "" {
		return nil, nil
	}
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return nil, err
	}
	tokens := it.Tokens()
	for len(tokens) > 0 {
		last := &tokens[len(tokens)-1]
		last.Value = strings.TrimRight(last.Value, "\n")
		if last.Value != "" {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return tokens, nil
}

func styleFor(dark bool) *chroma.Style {
	name := "github"
	if dark {
		name = "github-dark"
	}
	if st := styles.Get(name); st != nil {
		return st
	}
	return styles.Fallback
}

func lexerOrFallback(l chroma.Lexer) chroma.Lexer {
	if l == nil {
		return lexers.Fallback
	}
	return l
}

func lexerForPath(path string) chroma.Lexer {
	return chroma.Coalesce(lexerOrFallback(lexers.Match(path)))
}

func diffPathFromLine(line string) (string, bool) {
	const prefix = "diff --git "
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	tokens := diffLineTokens(strings.TrimSpace(line[len(prefix):]))
	if len(tokens) < 2 {
		return "", true
	}
	return normalizeDiffPath(tokens[1]), true
}

// diffLineTokens splits the path pair of a "diff --git" header, honoring
// C-style quoting of paths with spaces.
func diffLineTokens(s string) []string {
	var tokens []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return tokens
		}
		if s[0] == '"' {
			var buf strings.Builder
			escaped := false
			i := 1
			for ; i < len(s); i++ {
				ch := s[i]
				if escaped {
					buf.WriteByte(ch)
					escaped = false
					continue
				}
				if ch == '\\' {
					escaped = true
					continue
				}
				if ch == '"' {
					i++
					break
				}
				buf.WriteByte(ch)
			}
			tokens = append(tokens, buf.String())
			s = s[i:]
			continue
		}
		j := strings.IndexAny(s, " \t")
		if j < 0 {
			j = len(s)
		}
		tokens = append(tokens, s[:j])
		s = s[j:]
	}
}

func normalizeDiffPath(token string) string {
	token = strings.TrimPrefix(token, "a/")
	return strings.TrimPrefix(token, "b/")
}

func diffLineCode(line string) (code string, offset int, ok bool) {
	if line == "" {
		return "", 0, false
	}
	switch line[0] {
	case '+', '-', ' ':
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			return "", 0, false
		}
		return line[1:], 1, true
	default:
		return "", 0, false
	}
}
