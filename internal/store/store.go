// Package store implements the document store over Badger with owner-scoped
// live snapshot watches.
package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/latateni/latateni-server/internal/domain"
)

// Collection key prefixes. The prefix doubles as the collection name in
// change notifications and watch subscriptions.
const (
	PrefixCoach    = "coach:"
	PrefixSession  = "session:"
	PrefixPlayer   = "player:"
	PrefixExercise = "exercise:"
	PrefixProgram  = "program:"
	PrefixTheory   = "theory:"
)

// Store wraps a Badger database instance.
//
// Every committed write signals the collection's watchers; a watcher re-reads
// the full owner-scoped result set and pushes it as a complete snapshot. This
// push channel is the sole path by which caches observe mutations.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Change notification hub, keyed by collection prefix.
	watchMu  sync.RWMutex
	watchers map[string]map[int]chan struct{}
	watchSeq int

	Coaches   *Entity[domain.Coach]
	Sessions  *Entity[domain.Session]
	Players   *Entity[domain.Player]
	Exercises *Entity[domain.Exercise]
	Programs  *Entity[domain.TrainingProgram]
	Theory    *Entity[domain.TheoryArticle]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store := &Store{
		db:       db,
		logger:   logger,
		watchers: make(map[string]map[int]chan struct{}),
	}

	store.initEntities()

	logger.Info("Badger database opened successfully", "path", path)

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	s.logger.Info("Closing database connection")
	return s.db.Close()
}

// initEntities initializes the generic entities on the store.
// Coaches carry a unique case-insensitive email index; the four content
// collections carry a non-unique owner index backing owner-scoped queries
// and watches.
func (s *Store) initEntities() {
	s.Coaches = NewEntity[domain.Coach](s, PrefixCoach).
		WithUniqueIndexTransform("email",
			func(c *domain.Coach) []string {
				return []string{normalizeEmail(c.Email)}
			},
			normalizeEmail, // Case-insensitive lookups
		)

	s.Sessions = NewEntity[domain.Session](s, PrefixSession).
		WithIndex("coach", func(sess *domain.Session) []string {
			return []string{sess.CoachID}
		}).
		WithUniqueIndexTransform("token",
			func(sess *domain.Session) []string {
				return []string{sess.RefreshTokenHash}
			},
			nil,
		)

	s.Players = NewEntity[domain.Player](s, PrefixPlayer).
		WithIndex("owner", func(p *domain.Player) []string {
			return []string{p.OwnerID}
		})

	s.Exercises = NewEntity[domain.Exercise](s, PrefixExercise).
		WithIndex("owner", func(e *domain.Exercise) []string {
			return []string{e.OwnerID}
		})

	s.Programs = NewEntity[domain.TrainingProgram](s, PrefixProgram).
		WithIndex("owner", func(p *domain.TrainingProgram) []string {
			return []string{p.OwnerID}
		})

	s.Theory = NewEntity[domain.TheoryArticle](s, PrefixTheory).
		WithIndex("owner", func(t *domain.TheoryArticle) []string {
			return []string{t.OwnerID}
		})
}

// notifyChange signals all watchers of a collection that its contents changed.
// The signal is coalescing and non-blocking: a watcher that has not yet
// consumed its pending signal does not receive another.
func (s *Store) notifyChange(prefix string) {
	s.watchMu.RLock()
	defer s.watchMu.RUnlock()

	for _, ch := range s.watchers[prefix] {
		select {
		case ch <- struct{}{}:
		default:
			// Signal already pending; the watcher will re-query anyway.
		}
	}
}

// addWatcher registers a change-signal channel for a collection prefix and
// returns its registration id.
func (s *Store) addWatcher(prefix string) (int, chan struct{}) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.watchers[prefix] == nil {
		s.watchers[prefix] = make(map[int]chan struct{})
	}
	s.watchSeq++
	ch := make(chan struct{}, 1)
	s.watchers[prefix][s.watchSeq] = ch
	return s.watchSeq, ch
}

// removeWatcher deregisters a change-signal channel.
func (s *Store) removeWatcher(prefix string, id int) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	delete(s.watchers[prefix], id)
}
