// Package watch rebuilds when files under the source roots change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/inful/supercollider/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnore drops events under dir, typically the build destination when
// it lives inside a source root.
func WithIgnore(dir string) Option {
	return func(w *Watcher) {
		if abs, err := filepath.Abs(dir); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher debounces file events and runs one rebuild at a time. Events that
// arrive while a rebuild runs are coalesced into a single follow-up rebuild.
type Watcher struct {
	fs       *fsnotify.Watcher
	rebuild  func(context.Context)
	debounce time.Duration
	ignore   []string
	logger   *slog.Logger
}

// New watches every directory under roots. A root that is a file is watched
// through its parent directory.
func New(roots []string, rebuild func(context.Context), opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &Watcher{fs: fw, rebuild: rebuild, debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			w.logger.Warn("Not watching missing source root", logfields.Path(abs), logfields.Error(err))
			continue
		}
		if !info.IsDir() {
			abs = filepath.Dir(abs)
		}
		w.addDirsRecursive(abs)
	}
	if len(fw.WatchList()) == 0 {
		_ = fw.Close()
		return nil, fmt.Errorf("no watchable source roots")
	}
	return w, nil
}

// Run processes events until ctx ends, then waits for a running rebuild to
// return and closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fs.Close() }()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	done := make(chan struct{}, 1)
	running, pending := false, false
	start := func() {
		running = true
		go func() {
			w.rebuild(ctx)
			done <- struct{}{}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			if running {
				<-done
			}
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.handle(ev) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-timer.C:
			if running {
				pending = true
				continue
			}
			start()
		case <-done:
			running = false
			if pending {
				pending = false
				start()
			}
		}
	}
}

// handle reports whether ev should schedule a rebuild. New directories are
// added to the watch list.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	if w.ignored(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return true
}

func (w *Watcher) ignored(path string) bool {
	if shouldIgnoreName(filepath.Base(path)) {
		return true
	}
	for _, dir := range w.ignore {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules" || w.ignored(path)) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreName matches hidden files and editor swap or backup files.
func shouldIgnoreName(base string) bool {
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}
