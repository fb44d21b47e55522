package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/oakwood-commons/dirtab/pkg/logger"
)

// Watcher signals on Changes whenever the watched file is written, created
// or renamed into place.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	debounce *Debouncer
	changes  chan struct{}
	errs     chan error

	mu     sync.Mutex
	closed bool
}

// New watches path. The parent directory is watched so editors that replace
// the file through a rename are still seen.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:     abs,
		fs:       fs,
		debounce: NewDebouncer(0),
		changes:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the quiet period.
func WithDebounce(d *Debouncer) Option {
	return func(w *Watcher) { w.debounce = d }
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Changes delivers one value per settled burst of writes.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Errors delivers watcher errors. Only the latest unread error is kept.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Run forwards events until ctx is done, then closes the watcher along with
// the Changes and Errors channels.
func (w *Watcher) Run(ctx context.Context) {
	log := logger.FromContext(ctx).WithValues(logger.KeyPath, w.path)
	defer w.close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			log.V(1).Info("data file event", "op", ev.Op.String())
			w.debounce.Trigger(w.notify)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Error(err, "watch error")
			w.pushErr(err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) close() {
	w.debounce.Cancel()
	_ = w.fs.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.changes)
	close(w.errs)
}

// notify may run on a debounce timer after close; sends are skipped then.
func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) pushErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.errs <- err:
	default:
	}
}
