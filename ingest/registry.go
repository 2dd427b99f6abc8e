package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Registry keeps the index in sync with the corpus directory. File system
// events are merged over a debounce window so editors that write in several
// bursts trigger a single re-sync. Content-hash dedup in the engine makes
// repeated syncs idempotent.
type Registry struct {
	log              *slog.Logger
	root             string
	mergeEventsDelay time.Duration
	sync             func(ctx context.Context) error
}

func NewRegistry(log *slog.Logger, root string, mergeEventsDelay time.Duration, sync func(ctx context.Context) error) *Registry {
	return &Registry{
		log:              log,
		root:             root,
		mergeEventsDelay: mergeEventsDelay,
		sync:             sync,
	}
}

// Sync runs one full corpus synchronization.
func (r *Registry) Sync(ctx context.Context) error {
	return r.sync(ctx)
}

// Watch starts watching the corpus directory and re-syncs after changes
// settle. It returns once the watcher is installed; the event loop runs until
// ctx is cancelled.
func (r *Registry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(r.root); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		var pending <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(r.mergeEventsDelay)
					pending = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-pending:
						default:
						}
					}
					timer.Reset(r.mergeEventsDelay)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.log.Warn("corpus watch error", "error", err)

			case <-pending:
				if err := r.sync(ctx); err != nil {
					r.log.Error("corpus sync failed", "error", err)
				}
			}
		}
	}()

	return nil
}
