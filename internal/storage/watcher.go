package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/logging"
)

// DefaultDebounce is the quiet period after the last file event before a reload.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads a file catalog when any of its files change. Each
// successful reload hands a complete snapshot to the change callback; a
// failed reload reports the error and keeps the previous snapshot.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	provider *FileProvider
	files    map[string]bool
	dirs     []string

	debounce  time.Duration
	pending   time.Time
	onChange  func([]domain.Item)
	onError   func(error)
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
	closeOnce sync.Once

	stats WatcherStats
}

// WatcherStats counts watcher activity.
type WatcherStats struct {
	Events  int
	Reloads int
	Errors  int
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler receives reload and watch errors.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		if fn != nil {
			w.onError = fn
		}
	}
}

// NewWatcher creates a watcher for the provider's files. onChange is called
// from the watcher goroutine.
func NewWatcher(provider *FileProvider, onChange func([]domain.Item), opts ...WatcherOption) (*Watcher, error) {
	if provider == nil {
		return nil, ErrEmptyPath
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		provider: provider,
		files:    make(map[string]bool),
		debounce: DefaultDebounce,
		onChange: onChange,
		onError:  func(error) {},
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	// Editors often replace files by rename, so watch parent directories
	// and filter events by name.
	seenDirs := make(map[string]bool)
	for _, path := range provider.Paths() {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Start begins watching. It returns immediately; events are handled in a
// goroutine until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logging.Debug("watching catalog directory", "dir", dir)
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			logging.Warn("error closing catalog watcher", "error", err)
		}
	})
}

// Stats returns a copy of the activity counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 2
	if tick > 100*time.Millisecond {
		tick = 100 * time.Millisecond
	}
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(fmt.Errorf("catalog watcher: %w", err))
		case now := <-ticker.C:
			w.processDebounced(ctx, now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		name = event.Name
	}
	if !w.files[name] {
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.pending = time.Now()
	w.mu.Unlock()
	colors.Debug("catalog change: " + event.String())
}

func (w *Watcher) processDebounced(ctx context.Context, now time.Time) {
	w.mu.Lock()
	if w.pending.IsZero() || now.Sub(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	start := time.Now()
	items, err := w.provider.Snapshot(ctx)
	if err != nil {
		w.reportError(fmt.Errorf("reload catalog: %w", err))
		return
	}

	w.mu.Lock()
	w.stats.Reloads++
	w.mu.Unlock()

	fields := colors.Since(start)
	fields["items"] = len(items)
	colors.Structured("watcher", "reload", "completed", nil, fields)
	if w.onChange != nil {
		w.onChange(items)
	}
}

func (w *Watcher) reportError(err error) {
	w.mu.Lock()
	w.stats.Errors++
	w.mu.Unlock()
	logging.Warn("catalog watcher error", "error", err)
	w.onError(err)
}
