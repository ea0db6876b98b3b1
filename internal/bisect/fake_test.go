package bisect

import (
	"context"
	"errors"
)

type fakeRunner struct {
	runFunc func(args []string) (string, error)
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if f.runFunc != nil {
		return f.runFunc(args)
	}
	return "", nil
}

type fakeChooser struct {
	ref     string
	ok      bool
	err     error
	prompts []string
}

func (f *fakeChooser) ChooseRef(_ context.Context, prompt string) (string, bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.ref, f.ok, f.err
}

var errBoom = errors.New("boom")
