package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagokokada/bisect-go/internal/bisect"
)

const maxVisibleRefs = 10

type refModel struct {
	prompt   string
	refs     []string
	filtered []string
	cursor   int
	input    textinput.Model

	result string
	ok     bool
	done   bool
}

func newRefModel(prompt string, refs []string) refModel {
	ti := textinput.New()
	ti.Placeholder = "branch, tag or commit..."
	ti.CharLimit = 256
	ti.Focus()
	m := refModel{prompt: prompt, refs: refs, input: ti}
	m.applyFilter()
	return m
}

func (m *refModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.refs
	} else {
		m.filtered = nil
		for _, r := range m.refs {
			if strings.Contains(strings.ToLower(r), query) {
				m.filtered = append(m.filtered, r)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m refModel) Init() tea.Cmd { return textinput.Blink }

func (m refModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			// Typed text that matches no ref is taken as a revision.
			if len(m.filtered) > 0 {
				m.result = m.filtered[m.cursor]
			} else {
				m.result = strings.TrimSpace(m.input.Value())
			}
			m.ok = m.result != ""
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m refModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.prompt))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	start := 0
	if m.cursor >= maxVisibleRefs {
		start = m.cursor - maxVisibleRefs + 1
	}
	end := min(start+maxVisibleRefs, len(m.filtered))
	for i := start; i < end; i++ {
		line := "  " + m.filtered[i]
		if i == m.cursor {
			line = cursorStyle.Render("> " + m.filtered[i])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no matching ref, enter uses the typed revision"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: choose, esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Chooser asks for a bisect boundary, offering the names returned by refs.
type Chooser struct {
	refs func(ctx context.Context) ([]string, error)
	run  runFunc
}

var _ bisect.RefChooser = (*Chooser)(nil)

func NewChooser(in io.Reader, out io.Writer, refs func(ctx context.Context) ([]string, error)) *Chooser {
	return &Chooser{refs: refs, run: programRunner(in, out)}
}

func (c *Chooser) ChooseRef(ctx context.Context, prompt string) (string, bool, error) {
	var names []string
	if c.refs != nil {
		var err error
		names, err = c.refs(ctx)
		if err != nil {
			return "", false, fmt.Errorf("list refs: %w", err)
		}
	}
	final, err := c.run(ctx, newRefModel(prompt, names))
	if err != nil {
		return "", false, err
	}
	m := final.(refModel)
	return m.result, m.ok, nil
}
