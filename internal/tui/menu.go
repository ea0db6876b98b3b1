package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagokokada/bisect-go/internal/bisect"
)

type menuModel struct {
	title  string
	items  []bisect.MenuItem
	cursor int
	chosen int // -1 until an item is picked
}

func newMenuModel(title string, items []bisect.MenuItem) menuModel {
	return menuModel{title: title, items: items, chosen: -1}
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	k := key.String()
	for i, item := range m.items {
		if item.Label == k {
			m.chosen = i
			return m, tea.Quit
		}
	}
	switch k {
	case "esc", "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.items) > 0 {
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	if m.chosen >= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, item := range m.items {
		line := fmt.Sprintf(" %s  %s ", keyStyle.Render(item.Label), item.Description)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("key or enter: run, esc: close"))
	b.WriteString("\n")
	return b.String()
}

// Presenter shows the bisect menu in the terminal.
type Presenter struct {
	run runFunc
}

var _ bisect.Presenter = (*Presenter)(nil)

func NewPresenter(in io.Reader, out io.Writer) *Presenter {
	return &Presenter{run: programRunner(in, out)}
}

func (p *Presenter) ShowMenu(ctx context.Context, title string, items []bisect.MenuItem, mc bisect.MenuContext) error {
	final, err := p.run(ctx, newMenuModel(title, items))
	if err != nil {
		return err
	}
	m := final.(menuModel)
	if m.chosen < 0 {
		slog.Debug("menu dismissed", slog.String("title", title))
		return nil
	}
	item := m.items[m.chosen]
	slog.Debug("menu item selected", slog.String("label", item.Label), slog.String("description", item.Description))
	return item.Action(ctx, mc)
}
