// Package watcher provides debounced file system watching for the store
// directory, so a running TUI picks up writes made by other processes.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the time to wait after the last file event before
// triggering the callback. It coalesces the temp-write, rename pair of an
// atomic save into a single notification.
const DefaultDelay = 100 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay overrides the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// WithFilter limits notifications to events whose base file name passes keep.
func WithFilter(keep func(name string) bool) Option {
	return func(w *Watcher) { w.keep = keep }
}

// Watcher watches directories for changes and invokes a callback with
// debouncing.
type Watcher struct {
	fsw      *fsnotify.Watcher
	mu       sync.Mutex
	timer    *time.Timer
	delay    time.Duration
	keep     func(string) bool
	callback func()
}

// New creates a Watcher that monitors the given paths for changes.
// The callback is invoked (debounced) whenever a relevant change is detected.
func New(paths []string, callback func(), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:      fsw,
		delay:    DefaultDelay,
		keep:     IgnoreScratch,
		callback: callback,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// IgnoreScratch is the default filter. It drops temp files, lock files and
// other dotfiles written as part of a save.
func IgnoreScratch(name string) bool {
	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, ".tmp")
}

// Run starts the watch loop. It blocks until the context is canceled.
// Errors from the underlying watcher are passed to the optional errFn callback.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.keep(filepath.Base(event.Name)) {
				continue
			}
			w.debounce()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.callback)
}
