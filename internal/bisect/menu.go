package bisect

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// MenuTitle is the heading shown above the bisect menu.
const MenuTitle = "Bisecting"

// RefChooser asks the user for a branch, tag or commit. ok is false when the
// user cancels.
type RefChooser interface {
	ChooseRef(ctx context.Context, prompt string) (ref string, ok bool, err error)
}

// MenuContext is handed to the selected action.
type MenuContext struct {
	Runner  Runner
	Chooser RefChooser
	State   State
}

// Action performs one menu choice.
type Action func(ctx context.Context, mc MenuContext) error

// MenuItem is one selectable entry of the bisect menu.
type MenuItem struct {
	Label       string // key binding, e.g. "g"
	Description string
	Action      Action
}

// Presenter displays a titled menu and invokes the selected item's action
// with mc. Dismissing the menu is not an error.
type Presenter interface {
	ShowMenu(ctx context.Context, title string, items []MenuItem, mc MenuContext) error
}

var (
	inactiveItems = []MenuItem{
		{Label: "s", Description: "Start", Action: startAction},
	}
	activeItems = []MenuItem{
		{Label: "g", Description: "Mark as good", Action: markGoodAction},
		{Label: "b", Description: "Mark as bad", Action: markBadAction},
		{Label: "r", Description: "Reset", Action: resetAction},
	}
)

// MenuItems selects the options for s: Start while inactive, good/bad/reset
// while a session is open. The returned slice is a copy.
func MenuItems(s State) []MenuItem {
	if s.Active {
		return slices.Clone(activeItems)
	}
	return slices.Clone(inactiveItems)
}

// ShowMenu presents the options for mc.State through p.
func ShowMenu(ctx context.Context, p Presenter, mc MenuContext) error {
	return p.ShowMenu(ctx, MenuTitle, MenuItems(mc.State), mc)
}

// Start, MarkGood, MarkBad and Reset each perform exactly one git invocation
// and return its error unchanged.

func Start(ctx context.Context, r Runner) error {
	_, err := r.Run(ctx, "bisect", "start")
	return err
}

func MarkGood(ctx context.Context, r Runner, ref string) error {
	_, err := r.Run(ctx, "bisect", "good", ref)
	return err
}

func MarkBad(ctx context.Context, r Runner, ref string) error {
	_, err := r.Run(ctx, "bisect", "bad", ref)
	return err
}

func Reset(ctx context.Context, r Runner) error {
	_, err := r.Run(ctx, "bisect", "reset")
	return err
}

func startAction(ctx context.Context, mc MenuContext) error {
	return Start(ctx, mc.Runner)
}

func resetAction(ctx context.Context, mc MenuContext) error {
	return Reset(ctx, mc.Runner)
}

func markGoodAction(ctx context.Context, mc MenuContext) error {
	return markWithChosenRef(ctx, mc, "Mark as good", MarkGood)
}

func markBadAction(ctx context.Context, mc MenuContext) error {
	return markWithChosenRef(ctx, mc, "Mark as bad", MarkBad)
}

func markWithChosenRef(ctx context.Context, mc MenuContext, prompt string, mark func(context.Context, Runner, string) error) error {
	ref, ok, err := mc.Chooser.ChooseRef(ctx, prompt)
	if err != nil {
		return err
	}
	ref = strings.TrimSpace(ref)
	if !ok || ref == "" {
		slog.Debug("reference choice cancelled", slog.String("prompt", prompt))
		return nil
	}
	return mark(ctx, mc.Runner, ref)
}
