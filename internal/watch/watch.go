// Package watch reports changes to a repository's git directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thiagokokada/bisect-go/internal/debounce"
)

const DefaultDelay = 350 * time.Millisecond

// Paths returns the directories to watch: the .git directory (and its refs
// directory, where bisect boundaries are stored) when present, otherwise root.
func Paths(root string) []string {
	if root == "" {
		return nil
	}
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return []string{root}
	}
	paths := []string{gitDir}
	for _, sub := range []string{"refs", filepath.Join("refs", "heads"), filepath.Join("refs", "bisect")} {
		p := filepath.Join(gitDir, sub)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			paths = append(paths, p)
		}
	}
	return paths
}

func shouldIgnore(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".lock" || ext == ".ipc" {
		return true
	}
	slashed := filepath.ToSlash(name)
	return strings.Contains(slashed, "/objects/") || strings.HasSuffix(slashed, "/objects")
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return !shouldIgnore(ev.Name)
}

// signal returns a callback that leaves one pending token in ch; it never
// blocks, so a late timer firing after the loop exits is harmless.
func signal(ch chan<- struct{}) func() {
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Run calls refresh after each burst of relevant changes under root, until
// ctx is done. Calls to refresh never overlap.
func Run(ctx context.Context, root string, delay time.Duration, refresh func()) error {
	if delay <= 0 {
		delay = DefaultDelay
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	for _, path := range Paths(root) {
		slog.Debug("adding path to FS watcher", slog.String("path", path))
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, errors.Join(err, w.Close()))
		}
	}

	refreshes := make(chan struct{}, 1)
	d := debounce.New(delay, signal(refreshes))
	defer d.Stop()

	events, errs := w.Events, w.Errors
	for {
		select {
		case <-ctx.Done():
			return w.Close()
		case <-refreshes:
			slog.Debug("auto refresh")
			refresh()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			d.Trigger()
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}
