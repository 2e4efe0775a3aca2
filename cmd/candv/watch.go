package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports debounced changes to files matching a set of glob patterns.
type Watcher struct {
	patterns []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

// NewWatcher watches the directories that can hold a match for patterns.
func NewWatcher(patterns []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	w := &Watcher{
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
	}
	for _, p := range patterns {
		w.patterns = append(w.patterns, filepath.ToSlash(filepath.Clean(p)))
	}

	for _, root := range w.roots() {
		if err := w.addWatchesRecursive(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// roots returns the static directory prefix of every pattern.
func (w *Watcher) roots() []string {
	seen := make(map[string]bool)
	var roots []string
	for _, p := range w.patterns {
		base, _ := doublestar.SplitPattern(p)
		root := filepath.FromSlash(base)
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	return roots
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := d.Name()
		if strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// Run blocks until ctx is done, calling onChange once per quiet period that
// followed at least one relevant change.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if paths := w.flushPending(); len(paths) > 0 {
				onChange(paths)
			}
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !w.matches(event.Name) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Vocabulary change detected", "path", event.Name, "op", event.Op.String())
}

func (w *Watcher) matches(path string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(p, slashed); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) flushPending() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]fsnotify.Op)
	return paths
}

// Watch runs Check now and again after every debounced change until ctx is
// done. Compilation errors are logged and do not stop the loop.
func (a *App) Watch(ctx context.Context, args []string) error {
	patterns, err := a.patterns(args)
	if err != nil {
		return err
	}

	if _, err := a.Check(patterns); err != nil {
		a.logger.Error("Vocabulary check failed", "error", err)
	}

	w, err := NewWatcher(patterns, a.cfg.Watch.Debounce, a.logger)
	if err != nil {
		return err
	}
	a.logger.Info("Watching vocabularies", "patterns", patterns, "debounce", w.debounce)

	return w.Run(ctx, func(paths []string) {
		a.logger.Debug("Recompiling", "changed", len(paths))
		if _, err := a.Check(patterns); err != nil {
			a.logger.Error("Vocabulary check failed", "error", err)
		}
	})
}
