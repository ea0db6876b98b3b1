package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/bisect-go/internal/bisect"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func requireQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok, "expected tea.Quit")
}

// scripted returns a runFunc that feeds keys to the model instead of
// reading a terminal.
func scripted(keys ...tea.KeyMsg) runFunc {
	return func(_ context.Context, m tea.Model) (tea.Model, error) {
		for _, k := range keys {
			m, _ = m.Update(k)
		}
		return m, nil
	}
}

type recordingRunner struct{ calls [][]string }

func (r *recordingRunner) Run(_ context.Context, args ...string) (string, error) {
	r.calls = append(r.calls, args)
	return "", nil
}

func TestMenuModel_SelectByKey(t *testing.T) {
	t.Parallel()

	m := newMenuModel(bisect.MenuTitle, bisect.MenuItems(bisect.State{Active: true}))
	require.Contains(t, m.View(), "Mark as good")

	next, cmd := m.Update(runes("b"))
	requireQuit(t, cmd)
	require.Equal(t, 1, next.(menuModel).chosen)
}

func TestMenuModel_CursorAndEnter(t *testing.T) {
	t.Parallel()

	var m tea.Model = newMenuModel(bisect.MenuTitle, bisect.MenuItems(bisect.State{Active: true}))
	m, _ = m.Update(keyDown)
	m, _ = m.Update(keyDown)
	m, _ = m.Update(keyDown) // clamped
	m, cmd := m.Update(keyEnter)
	requireQuit(t, cmd)
	require.Equal(t, 2, m.(menuModel).chosen)
}

func TestMenuModel_Dismiss(t *testing.T) {
	t.Parallel()

	m := newMenuModel(bisect.MenuTitle, bisect.MenuItems(bisect.State{}))
	next, cmd := m.Update(keyEsc)
	requireQuit(t, cmd)
	require.Equal(t, -1, next.(menuModel).chosen)

	next, cmd = m.Update(runes("x"))
	require.Nil(t, cmd)
	require.Equal(t, -1, next.(menuModel).chosen)
}

func TestPresenter_RunsSelectedAction(t *testing.T) {
	t.Parallel()

	r := &recordingRunner{}
	p := &Presenter{run: scripted(runes("s"))}
	err := bisect.ShowMenu(t.Context(), p, bisect.MenuContext{Runner: r})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"bisect", "start"}}, r.calls)
}

func TestPresenter_DismissRunsNothing(t *testing.T) {
	t.Parallel()

	r := &recordingRunner{}
	p := &Presenter{run: scripted(keyEsc)}
	err := bisect.ShowMenu(t.Context(), p, bisect.MenuContext{Runner: r, State: bisect.State{Active: true}})
	require.NoError(t, err)
	require.Empty(t, r.calls)
}

func TestPresenter_RunError(t *testing.T) {
	t.Parallel()

	p := &Presenter{run: func(context.Context, tea.Model) (tea.Model, error) {
		return nil, errors.New("no tty")
	}}
	err := p.ShowMenu(t.Context(), "t", nil, bisect.MenuContext{})
	require.ErrorContains(t, err, "no tty")
}

func TestRefModel_Filter(t *testing.T) {
	t.Parallel()

	var m tea.Model = newRefModel("Mark as good", []string{"main", "v1.0", "v2.0"})
	m, _ = m.Update(runes("v"))
	require.Equal(t, []string{"v1.0", "v2.0"}, m.(refModel).filtered)
	m, _ = m.Update(keyDown)
	m, cmd := m.Update(keyEnter)
	requireQuit(t, cmd)

	rm := m.(refModel)
	require.True(t, rm.ok)
	require.Equal(t, "v2.0", rm.result)
}

func TestRefModel_TypedRevision(t *testing.T) {
	t.Parallel()

	hash := strings.Repeat("d", 12)
	var m tea.Model = newRefModel("Mark as bad", []string{"main"})
	m, _ = m.Update(runes(hash))
	require.Empty(t, m.(refModel).filtered)
	require.Contains(t, m.View(), "no matching ref")
	m, _ = m.Update(keyEnter)

	rm := m.(refModel)
	require.True(t, rm.ok)
	require.Equal(t, hash, rm.result)
}

func TestRefModel_Cancel(t *testing.T) {
	t.Parallel()

	var m tea.Model = newRefModel("Mark as bad", []string{"main"})
	m, cmd := m.Update(keyEsc)
	requireQuit(t, cmd)
	require.False(t, m.(refModel).ok)
}

func TestChooser_MarkGoodEndToEnd(t *testing.T) {
	t.Parallel()

	c := &Chooser{
		refs: func(context.Context) ([]string, error) { return []string{"main", "v1.0"}, nil },
		run:  scripted(runes("v1"), keyEnter),
	}
	r := &recordingRunner{}
	p := &Presenter{run: scripted(runes("g"))}

	err := bisect.ShowMenu(t.Context(), p, bisect.MenuContext{Runner: r, Chooser: c, State: bisect.State{Active: true}})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"bisect", "good", "v1.0"}}, r.calls)
}

func TestChooser_RefsError(t *testing.T) {
	t.Parallel()

	c := &Chooser{
		refs: func(context.Context) ([]string, error) { return nil, errors.New("boom") },
		run:  scripted(),
	}
	_, ok, err := c.ChooseRef(t.Context(), "Mark as good")
	require.ErrorContains(t, err, "boom")
	require.False(t, ok)
}
