// Package dropwatch turns files copied into a directory into drag-and-drop
// gestures: the first file of a burst raises an enter event and, once the
// burst settles, every file of it is delivered as one drop.
package dropwatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher watches one directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	onEnter  func()
	onDrop   func(paths []string)
	logger   *zap.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	pending  []string
	seen     map[string]bool
	timer    *time.Timer
	done     chan struct{}
	started  bool
	stopOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce sets how long a burst must be quiet before it is dropped.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for dir. onEnter and onDrop are called from the
// watcher's goroutines.
func New(dir string, onEnter func(), onDrop func(paths []string), opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		debounce: defaultDebounce,
		onEnter:  onEnter,
		onDrop:   onDrop,
		logger:   zap.NewNop(),
		seen:     make(map[string]bool),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Start creates the directory if needed and begins watching. It runs until
// ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.dir); err != nil {
		_ = fw.Close()
		return err
	}
	w.watcher = fw
	w.started = true
	w.logger.Debug("drop folder watching", zap.String("dir", w.dir))
	go w.run(ctx)
	return nil
}

// Stop stops watching and discards a burst in progress.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.pending = nil
		if w.watcher != nil {
			_ = w.watcher.Close()
		}
	})
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("drop folder error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return
	}
	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return
	}
	w.logger.Debug("drop folder event", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))

	w.mu.Lock()
	first := len(w.pending) == 0
	if !w.seen[ev.Name] {
		w.seen[ev.Name] = true
		w.pending = append(w.pending, ev.Name)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
	w.mu.Unlock()

	if first && w.onEnter != nil {
		w.onEnter()
	}
}

func (w *Watcher) flush() {
	select {
	case <-w.done:
		return
	default:
	}
	w.mu.Lock()
	paths := w.pending
	w.pending = nil
	w.seen = make(map[string]bool)
	w.timer = nil
	w.mu.Unlock()
	if len(paths) > 0 && w.onDrop != nil {
		w.onDrop(paths)
	}
}
