package store

import (
	"context"
	"log/slog"
)

// Watch streams full snapshots of an owner's records in a collection.
//
// On every committed write to the collection the watch re-queries the complete
// owner-scoped result set and delivers it on Snapshots. Deliveries are
// coalesced: if the consumer is slow, intermediate snapshots are dropped and
// only the latest state is delivered. The first snapshot is sent immediately
// after the watch starts, so a consumer always begins from current state.
type Watch[T any] struct {
	Snapshots <-chan []T
	Errors    <-chan error

	cancel func()
	done   chan struct{}
}

// Close stops the watch and waits for the pump goroutine to exit. After Close
// returns no further snapshots or errors are delivered. Safe to call once.
func (w *Watch[T]) Close() {
	w.cancel()
	<-w.done
}

// WatchByIndex starts a live watch over all records whose index value matches.
// The returned Watch must be closed by the caller.
func (e *Entity[T]) WatchByIndex(ctx context.Context, indexName, value string) *Watch[T] {
	ctx, cancel := context.WithCancel(ctx)

	snapshots := make(chan []T, 1)
	errs := make(chan error, 1)

	watcherID, signal := e.store.addWatcher(e.prefix)

	w := &Watch[T]{
		Snapshots: snapshots,
		Errors:    errs,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go func() {
		defer close(w.done)
		defer e.store.removeWatcher(e.prefix, watcherID)
		defer close(snapshots)
		defer close(errs)

		// Initial snapshot, then one re-query per change signal.
		for {
			records, err := e.ListByIndex(ctx, indexName, value)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				e.store.logger.Error("watch query failed",
					slog.String("prefix", e.prefix),
					slog.String("index", indexName),
					slog.String("error", err.Error()))
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			} else {
				deliverLatest(snapshots, records)
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return w
}

// deliverLatest replaces any undelivered snapshot with the new one. The
// channel has capacity 1; draining before sending keeps the send non-blocking
// under a single producer.
func deliverLatest[T any](ch chan []T, snapshot []T) {
	select {
	case <-ch:
	default:
	}
	ch <- snapshot
}
