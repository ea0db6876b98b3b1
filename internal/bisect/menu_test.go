package bisect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func descriptions(items []MenuItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Description)
	}
	return out
}

func TestMenuItems(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"Start"}, descriptions(MenuItems(State{})))
	require.Equal(t, []string{"Mark as good", "Mark as bad", "Reset"}, descriptions(MenuItems(State{Active: true})))
}

func TestMenuItems_ReturnsCopies(t *testing.T) {
	t.Parallel()

	items := MenuItems(State{Active: true})
	items[0].Description = "mutated"
	items[1] = MenuItem{}
	require.Equal(t, []string{"Mark as good", "Mark as bad", "Reset"}, descriptions(MenuItems(State{Active: true})))
}

func runItem(t *testing.T, items []MenuItem, label string, mc MenuContext) error {
	t.Helper()
	for _, it := range items {
		if it.Label == label {
			return it.Action(t.Context(), mc)
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func TestMenuActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		state     State
		label     string
		chooser   *fakeChooser
		wantCalls [][]string
		wantErr   error
		prompt    string
	}{
		{
			name:      "start",
			label:     "s",
			wantCalls: [][]string{{"bisect", "start"}},
		},
		{
			name:      "good",
			state:     State{Active: true},
			label:     "g",
			chooser:   &fakeChooser{ref: "v1.0", ok: true},
			wantCalls: [][]string{{"bisect", "good", "v1.0"}},
			prompt:    "Mark as good",
		},
		{
			name:      "bad",
			state:     State{Active: true},
			label:     "b",
			chooser:   &fakeChooser{ref: "main", ok: true},
			wantCalls: [][]string{{"bisect", "bad", "main"}},
			prompt:    "Mark as bad",
		},
		{
			name:    "good_cancelled",
			state:   State{Active: true},
			label:   "g",
			chooser: &fakeChooser{ok: false},
			prompt:  "Mark as good",
		},
		{
			name:    "bad_blank_choice",
			state:   State{Active: true},
			label:   "b",
			chooser: &fakeChooser{ref: "  ", ok: true},
			prompt:  "Mark as bad",
		},
		{
			name:    "chooser_error",
			state:   State{Active: true},
			label:   "g",
			chooser: &fakeChooser{err: errBoom},
			wantErr: errBoom,
			prompt:  "Mark as good",
		},
		{
			name:      "reset",
			state:     State{Active: true},
			label:     "r",
			wantCalls: [][]string{{"bisect", "reset"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &fakeRunner{}
			mc := MenuContext{Runner: r, State: tt.state}
			if tt.chooser != nil {
				mc.Chooser = tt.chooser
			}
			err := runItem(t, MenuItems(tt.state), tt.label, mc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantCalls, r.calls)
			if tt.prompt != "" {
				require.Equal(t, []string{tt.prompt}, tt.chooser.prompts)
			}
		})
	}
}

func TestMenuActions_PropagateToolErrors(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{runFunc: func([]string) (string, error) { return "", errBoom }}
	mc := MenuContext{Runner: r, Chooser: &fakeChooser{ref: "main", ok: true}, State: State{Active: true}}

	for _, label := range []string{"g", "b", "r"} {
		require.ErrorIs(t, runItem(t, MenuItems(mc.State), label, mc), errBoom)
	}
	require.ErrorIs(t, runItem(t, MenuItems(State{}), "s", mc), errBoom)
	require.Len(t, r.calls, 4, "no retries")
}

type recordingPresenter struct {
	title string
	items []MenuItem
	pick  string
}

func (p *recordingPresenter) ShowMenu(ctx context.Context, title string, items []MenuItem, mc MenuContext) error {
	p.title = title
	p.items = items
	for _, it := range items {
		if it.Label == p.pick {
			return it.Action(ctx, mc)
		}
	}
	return nil
}

func TestShowMenu(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	p := &recordingPresenter{pick: "r"}
	err := ShowMenu(t.Context(), p, MenuContext{Runner: r, State: State{Active: true, Bad: hashA}})
	require.NoError(t, err)
	require.Equal(t, MenuTitle, p.title)
	require.Equal(t, []string{"Mark as good", "Mark as bad", "Reset"}, descriptions(p.items))
	require.Equal(t, [][]string{{"bisect", "reset"}}, r.calls)

	r = &fakeRunner{}
	p = &recordingPresenter{pick: "r"}
	require.NoError(t, ShowMenu(t.Context(), p, MenuContext{Runner: r}))
	require.Equal(t, []string{"Start"}, descriptions(p.items))
	require.Empty(t, r.calls, "reset is not offered while inactive")
}
