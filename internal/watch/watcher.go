// Package watch triggers rebuilds when files under the manual source tree
// change. Event bursts are debounced into a single rebuild request and
// rebuilds never overlap; a request arriving mid-build runs once more after
// the current build finishes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/refman/internal/logfields"
)

const defaultDebounce = 300 * time.Millisecond

// RebuildFunc runs one rebuild. Errors are logged and the watcher keeps
// running.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors one or more directory trees and schedules rebuilds.
type Watcher struct {
	roots    []string
	rebuild  RebuildFunc
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending chan struct{}
}

// New creates a watcher over the given directory roots.
func New(rebuild RebuildFunc, roots ...string) (*Watcher, error) {
	if rebuild == nil {
		return nil, errors.New("rebuild callback is nil")
	}
	if len(roots) == 0 {
		return nil, errors.New("no directories to watch")
	}
	return &Watcher{
		roots:    roots,
		rebuild:  rebuild,
		debounce: defaultDebounce,
		pending:  make(chan struct{}, 1),
	}, nil
}

// WithDebounce overrides the interval a change burst must stay quiet before
// a rebuild is scheduled.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run watches the configured roots until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, root := range w.roots {
		if err := addDirsRecursive(fsw, root); err != nil {
			return err
		}
	}
	slog.Info("Watching for changes", "roots", len(w.roots), "debounce", w.debounce)

	go w.rebuildLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if ignorePath(ev.Name) {
		return
	}
	// New directories must be added to the watch set or changes inside
	// them go unseen.
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), "op", ev.Op.String())
	w.schedule()
}

// schedule arms the debounce timer. Re-arming on every event collapses a
// burst of writes into one rebuild request.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.pending <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) rebuildLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pending:
			slog.Info("Change detected; rebuilding manual")
			if err := w.rebuild(ctx); err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Dir(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// ignorePath reports whether a filesystem event should not trigger a
// rebuild. Hidden files and editor temp files churn constantly during
// editing sessions.
func ignorePath(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
