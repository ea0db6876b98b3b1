// Package tui implements the interactive bisect menu and the reference
// chooser on top of bubbletea.
package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// runFunc runs a model to completion and returns its final state.
type runFunc func(ctx context.Context, m tea.Model) (tea.Model, error)

func programRunner(in io.Reader, out io.Writer) runFunc {
	return func(ctx context.Context, m tea.Model) (tea.Model, error) {
		p := tea.NewProgram(m,
			tea.WithContext(ctx),
			tea.WithInput(in),
			tea.WithOutput(out),
		)
		final, err := p.Run()
		if err != nil {
			return nil, fmt.Errorf("run interactive prompt: %w", err)
		}
		return final, nil
	}
}
