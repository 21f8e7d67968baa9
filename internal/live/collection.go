// Package live maintains owner-scoped in-memory mirrors of the store's
// collections. A bound collection follows its owner's records through store
// watches: every committed write is reflected by replacing the cached set
// with a fresh full snapshot. Readers get synchronous access to the latest
// state; they never touch the database directly.
package live

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/latateni/latateni-server/internal/store"
)

// State describes a collection's binding lifecycle.
type State int

const (
	// StateUnbound means no identity is attached and the cache is empty.
	StateUnbound State = iota
	// StateSubscribing means a watch was opened but no snapshot arrived yet.
	StateSubscribing
	// StateLive means the cache mirrors the store for the bound owner.
	StateLive
	// StateError means the watch reported a failure; the cache is frozen at
	// its last delivered state until the next rebind.
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateSubscribing:
		return "subscribing"
	case StateLive:
		return "live"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Collection is an owner-scoped live mirror of one store entity.
//
// Only the watch-consuming goroutine replaces the cache; Bind and Unbind
// fully stop that goroutine before touching collection state, so cache
// mutation is single-writer by construction.
type Collection[T any] struct {
	name    string
	entity  *store.Entity[T]
	project func(*T) string
	logger  *slog.Logger
	emit    func(ownerID, collection string, items []T)

	bindMu sync.Mutex // serializes Bind/Unbind
	cancel context.CancelFunc
	watch  *store.Watch[T]
	done   chan struct{}

	mu      sync.RWMutex
	state   State
	ownerID string
	items   []T
}

// NewCollection creates an unbound collection. project extracts the text a
// record is matched against by Filter; emit, if non-nil, is invoked after
// every cache replacement with the owner the watch was bound to and the new
// full snapshot.
func NewCollection[T any](entity *store.Entity[T], name string, project func(*T) string, logger *slog.Logger, emit func(ownerID, collection string, items []T)) *Collection[T] {
	return &Collection[T]{
		name:    name,
		entity:  entity,
		project: project,
		logger:  logger.With(slog.String("collection", name)),
		emit:    emit,
		state:   StateUnbound,
	}
}

// Name returns the collection's wire name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Bind attaches the collection to an owner. Any previous watch is closed and
// its consumer goroutine joined before the cache is cleared and a new watch
// opened, so records from a previously bound owner are never observable
// after Bind returns.
func (c *Collection[T]) Bind(ctx context.Context, ownerID string) {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	c.teardown()

	c.mu.Lock()
	c.items = nil
	c.ownerID = ownerID
	c.state = StateSubscribing
	c.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	w := c.entity.WatchByIndex(watchCtx, "owner", ownerID)

	c.cancel = cancel
	c.watch = w
	c.done = make(chan struct{})

	go c.consume(w, c.done, ownerID)

	c.logger.Debug("collection bound", slog.String("owner", ownerID))
}

// Unbind detaches the collection and clears the cache. After Unbind returns
// no snapshot can mutate the cache.
func (c *Collection[T]) Unbind() {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	c.teardown()

	c.mu.Lock()
	c.items = nil
	c.ownerID = ""
	c.state = StateUnbound
	c.mu.Unlock()
}

// teardown stops the current watch and waits for the consumer goroutine.
// Caller holds bindMu.
func (c *Collection[T]) teardown() {
	if c.watch == nil {
		return
	}
	c.cancel()
	c.watch.Close()
	<-c.done
	c.watch = nil
	c.cancel = nil
	c.done = nil
}

// consume is the single writer of the cache. It exits when the watch's
// channels close. ownerID is the owner this watch was bound to; snapshots
// are emitted under it, never under whatever owner is current at emit time.
func (c *Collection[T]) consume(w *store.Watch[T], done chan struct{}, ownerID string) {
	defer close(done)

	snapshots := w.Snapshots
	errs := w.Errors

	for snapshots != nil || errs != nil {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			c.mu.Lock()
			c.items = snap
			c.state = StateLive
			c.mu.Unlock()

			c.logger.Debug("snapshot applied",
				slog.String("owner", ownerID),
				slog.Int("count", len(snap)))

			if c.emit != nil {
				c.emit(ownerID, c.name, append([]T(nil), snap...))
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			c.mu.Lock()
			c.state = StateError
			c.mu.Unlock()

			c.logger.Error("subscription failed, cache frozen at last snapshot",
				slog.String("error", err.Error()))
		}
	}
}

// State returns the current binding state.
func (c *Collection[T]) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// OwnerID returns the bound owner, or "" when unbound.
func (c *Collection[T]) OwnerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ownerID
}

// Items returns a copy of the current cache in store iteration order.
// It never blocks on the store.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// Len returns the current cache size.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Filter returns the cached records whose projected text contains query,
// case-insensitively. An empty query returns the full cache. The result
// preserves cache order; the cache itself is never modified.
func (c *Collection[T]) Filter(query string) []T {
	return c.FilterFunc(query, nil)
}

// FilterFunc is Filter with an extra predicate applied before the substring
// match; a nil predicate keeps every record.
func (c *Collection[T]) FilterFunc(query string, keep func(*T) bool) []T {
	q := strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.items))
	for i := range c.items {
		if keep != nil && !keep(&c.items[i]) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.project(&c.items[i])), q) {
			continue
		}
		out = append(out, c.items[i])
	}
	return out
}
