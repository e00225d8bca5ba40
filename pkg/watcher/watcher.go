// Package watcher monitors a directory tree for source changes, used to
// drive optional auto-refresh of the analysis.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/lizardview/pkg/debug"
)

// DefaultDebounceDuration coalesces bursts of filesystem events (editors
// write several files, tools rewrite whole trees) into one notification.
const DefaultDebounceDuration = 500 * time.Millisecond

// ErrAlreadyStarted is returned by Start when the watcher is running.
var ErrAlreadyStarted = errors.New("watcher already started")

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithIgnore sets a predicate for paths that should not be watched or
// reported (relative to the root, slash-separated).
func WithIgnore(fn func(rel string) bool) Option {
	return func(w *Watcher) {
		w.ignore = fn
	}
}

// Watcher monitors a directory tree using fsnotify. Subdirectories are
// added to the watch recursively, and directories created later are picked
// up from their create events.
type Watcher struct {
	root     string
	debounce time.Duration
	ignore   func(rel string) bool

	fsw      *fsnotify.Watcher
	changeCh chan struct{}

	mu      sync.Mutex
	started bool
	timer   *time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a watcher for the given root directory.
func New(root string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     abs,
		debounce: DefaultDebounceDuration,
		ignore:   func(string) bool { return false },
		changeCh: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. Directories that cannot be added (permissions,
// races with deletion) are skipped.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw
	w.ctx, w.cancel = context.WithCancel(context.Background())

	added := 0
	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err == nil {
			added++
		}
		return nil
	})
	if err != nil || added == 0 {
		fsw.Close()
		w.fsw = nil
		w.cancel()
		if err == nil {
			err = errors.New("no watchable directories under " + w.root)
		}
		return err
	}
	debug.Log("watching %d directories under %s", added, w.root)

	w.started = true
	go w.loop()
	return nil
}

// Stop stops watching. The change channel is intentionally not closed:
// closing would race with pending notifications, and Stop is only called
// at shutdown.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
	w.started = false
}

// Changed returns a channel that receives after a debounced change burst.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Root returns the watched root directory.
func (w *Watcher) Root() string {
	return w.root
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	// Dotted directories are never interesting to the analyzer.
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return w.ignore(rel)
}

func (w *Watcher) loop() {
	w.mu.Lock()
	if w.fsw == nil {
		w.mu.Unlock()
		return
	}
	events := w.fsw.Events
	errCh := w.fsw.Errors
	w.mu.Unlock()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.mu.Lock()
					if w.fsw != nil {
						_ = w.fsw.Add(event.Name)
					}
					w.mu.Unlock()
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.trigger()
			}

		case err, ok := <-errCh:
			if !ok {
				return
			}
			debug.Log("watcher error: %v", err)
		}
	}
}

// trigger (re)arms the debounce timer; the notification fires once the
// burst goes quiet.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return
	}
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}
