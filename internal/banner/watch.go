package banner

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/xtding233/gacha-server/internal/logger"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Paths     []string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// NewReloadWatcher reloads reg from path whenever the file changes. Failed reloads are
// logged by the registry and leave the previous banners in place.
func NewReloadWatcher(ctx context.Context, reg *Registry, path string, interval time.Duration) *FileWatcher {
	return NewFileWatcher([]string{path}, interval, func(p string) {
		logger.FromContext(ctx).Info("Banner file changed, reloading", "path", p)
		_ = reg.Load(ctx, FileSource{Path: p})
	})
}

// Start primes the modification times synchronously, then polls in a goroutine until Stop
// is called or ctx is done.
func (w *FileWatcher) Start(ctx context.Context) {
	w.scanAll(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the watcher. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scanAll checks mtimes and invokes onChange for files that changed since last scan.
func (w *FileWatcher) scanAll(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing file: keep the last known mtime and try again next tick
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		if !ok {
			w.lastMTime[p] = mt
			continue
		}
		if mt.After(last) {
			w.lastMTime[p] = mt
			if !prime && w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
