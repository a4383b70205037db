package snapshot

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driven"
	"github.com/custodia-labs/horizon/internal/logger"
)

// DefaultDebounce coalesces the bursts of events editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

// ApplyFunc receives each successfully loaded snapshot.
type ApplyFunc func(ctx context.Context, snap *domain.RawSnapshot) error

// Watcher reloads a snapshot file whenever it changes and hands the result
// to an ApplyFunc. A snapshot that fails to load is logged and skipped; the
// previously applied data stays in place.
type Watcher struct {
	source   driven.SnapshotSource
	apply    ApplyFunc
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher creates a watcher for source. A non-positive debounce uses
// DefaultDebounce.
func NewWatcher(source driven.SnapshotSource, apply ApplyFunc, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{source: source, apply: apply, debounce: debounce}
}

// Reload loads the snapshot once and applies it.
func (w *Watcher) Reload(ctx context.Context) error {
	snap, err := w.source.Load(ctx)
	if err != nil {
		return err
	}
	if err := w.apply(ctx, snap); err != nil {
		return errors.Wrap(err, "applying snapshot")
	}
	logger.Info("Reloaded snapshot %s", w.source.Path())
	return nil
}

// Start begins watching. The parent directory is watched rather than the
// file itself so that editors which replace the file on save are followed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return errors.New("snapshot watcher already started")
	}

	path, err := filepath.Abs(w.source.Path())
	if err != nil {
		return errors.Wrap(err, "resolving snapshot path")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return errors.WithHint(
			errors.Wrapf(err, "watching %s", filepath.Dir(path)),
			"the snapshot directory must exist before --watch is used")
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = fw
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.loop(ctx, fw, path, w.done)

	logger.Debug("Watching snapshot %s", path)
	return nil
}

// Close stops watching and waits for an in-flight reload to finish.
func (w *Watcher) Close() error {
	w.mu.Lock()
	fw, cancel, done := w.watcher, w.cancel, w.done
	w.watcher, w.cancel, w.done = nil, nil, nil
	w.mu.Unlock()

	if fw == nil {
		return nil
	}
	cancel()
	err := fw.Close()
	<-done
	return err
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, path string, done chan<- struct{}) {
	defer close(done)

	// The timer only runs while a reload is pending.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Snapshot change detected: %s", event)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Snapshot watcher error: %v", err)

		case <-timer.C:
			if err := w.Reload(ctx); err != nil {
				logger.Error("Snapshot reload failed: %v", err)
			}
		}
	}
}
