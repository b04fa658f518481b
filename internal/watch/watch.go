// Package watch runs a callback whenever a file changes on disk.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last change before the
// callback runs. Editors often write a file several times per save.
const DefaultDebounce = 500 * time.Millisecond

// Func is called after the watched file settles.
type Func func(ctx context.Context) error

// Watcher watches a single file. The file's directory is watched so
// that editors replacing the file by rename are still seen.
type Watcher struct {
	path     string
	onChange Func
	log      *zap.Logger
	debounce time.Duration
	tick     time.Duration

	mu       sync.Mutex
	running  bool
	pending  time.Time // time of the last unprocessed change
	changes  int
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New returns a Watcher calling onChange when path changes. A zero
// debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, onChange Func, logger *zap.Logger) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("nil change callback")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		onChange: onChange,
		log:      logger.With(zap.String("file", abs)),
		debounce: debounce,
		tick:     min(100*time.Millisecond, debounce/2),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block. The watcher runs until Stop
// is called or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}
	w.running = true
	go w.run(ctx, fw)
	w.log.Info("watching for changes")
	return nil
}

// Stop stops the watcher and waits for a running callback to return.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running {
		<-w.doneCh
	}
}

// Done is closed once a started watcher has shut down.
func (w *Watcher) Done() <-chan struct{} { return w.doneCh }

// Changes returns how many times the callback has run.
func (w *Watcher) Changes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.changes
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	defer close(w.doneCh)
	defer fw.Close()
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.log.Debug("file event", zap.Stringer("op", event.Op))
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// flush runs the callback once the last change is older than the
// debounce period.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.changes++
	w.mu.Unlock()

	w.log.Info("file changed")
	if err := w.onChange(ctx); err != nil {
		w.log.Error("change handler failed", zap.Error(err))
	}
}
