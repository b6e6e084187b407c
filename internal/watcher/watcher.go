// Package watcher turns filesystem events under the note source tree into
// debounced change ticks. Each tick means "something under the sources
// changed, re-run a sync"; the sync pipeline's checksum gate makes the
// re-run cheap, so ticks carry no per-path detail.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
)

// DefaultDebounceWindow is how long the watcher waits after the last
// event before emitting a tick. Editors typically write a burst of
// events per save; the window coalesces each burst into one tick.
const DefaultDebounceWindow = 200 * time.Millisecond

// Options configures the watcher behavior.
type Options struct {
	// DebounceWindow is the quiet period required before a tick fires.
	DebounceWindow time.Duration
	Logger         *slog.Logger
}

// Watcher watches the directory tree rooted at a glob's fixed prefix and
// delivers debounced change ticks.
type Watcher struct {
	fs      *fsnotify.Watcher
	window  time.Duration
	log     *slog.Logger
	ticks   chan struct{}
	stopped bool
	mu      sync.Mutex
}

// New creates a watcher over the source glob. The watched root is the
// longest glob-free prefix of the pattern; events anywhere under it
// count as changes.
func New(pattern string, opts Options) (*Watcher, error) {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultDebounceWindow
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeInternal, err)
	}

	root := GlobRoot(pattern)
	if err := fs.Add(root); err != nil {
		_ = fs.Close()
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeBadGlob, err).WithPath(root)
	}

	opts.Logger.Debug("watching", "root", root, "window", opts.DebounceWindow)
	return &Watcher{
		fs:     fs,
		window: opts.DebounceWindow,
		log:    opts.Logger,
		ticks:  make(chan struct{}, 1),
	}, nil
}

// GlobRoot returns the longest prefix of pattern containing no glob
// metacharacters, i.e. the directory to watch.
func GlobRoot(pattern string) string {
	dir := pattern
	for strings.ContainsAny(dir, "*?[") {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
	if dir == "" {
		return "."
	}
	return dir
}

// Ticks returns the channel change ticks arrive on. The channel is
// closed when the watcher stops.
func (w *Watcher) Ticks() <-chan struct{} {
	return w.ticks
}

// Run consumes filesystem events until the context is cancelled,
// emitting one tick per quiet period. It owns the tick channel and
// closes it on return.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.ticks)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("fs event", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.window)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.window)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			select {
			case w.ticks <- struct{}{}:
			default:
				// A tick is already pending; the next sync covers this
				// change too.
			}
		}
	}
}

// Close releases the underlying filesystem watcher. Safe to call more
// than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	return w.fs.Close()
}
