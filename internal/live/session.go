package live

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/latateni/latateni-server/internal/domain"
	"github.com/latateni/latateni-server/internal/store"
)

// Collection wire names, matching the event names pushed to clients.
const (
	CollectionPlayers   = "players"
	CollectionExercises = "exercises"
	CollectionPrograms  = "trainingPrograms"
	CollectionTheory    = "theory"
)

// Identity is the owner a session's collections are scoped to.
type Identity struct {
	ID    string
	Email string
}

// Emitter receives full snapshots for delivery to a coach's connected
// clients.
type Emitter interface {
	PublishSnapshot(coachID, collection string, payload any)
}

// Session holds the four live collections of one signed-in coach and binds
// or unbinds them as a unit when the identity changes.
type Session struct {
	Players   *Collection[domain.Player]
	Exercises *Collection[domain.Exercise]
	Programs  *Collection[domain.TrainingProgram]
	Theory    *Collection[domain.TheoryArticle]

	logger *slog.Logger

	mu       sync.RWMutex
	identity *Identity
}

// NewSession creates an unbound session over the store's collections.
// Snapshots applied to any collection are forwarded to emitter under the
// bound coach's id; a nil emitter disables forwarding.
func NewSession(st *store.Store, logger *slog.Logger, emitter Emitter) *Session {
	s := &Session{logger: logger}

	// The owner id arrives from the collection's bind-time capture, so a
	// snapshot drained during a rebind is never published under the new
	// identity.
	forward := func(ownerID, collection string, payload any) {
		if emitter == nil || ownerID == "" {
			return
		}
		emitter.PublishSnapshot(ownerID, collection, payload)
	}

	s.Players = NewCollection(st.Players, CollectionPlayers,
		(*domain.Player).SearchText, logger,
		func(owner, name string, items []domain.Player) { forward(owner, name, items) })
	s.Exercises = NewCollection(st.Exercises, CollectionExercises,
		(*domain.Exercise).SearchText, logger,
		func(owner, name string, items []domain.Exercise) { forward(owner, name, items) })
	s.Programs = NewCollection(st.Programs, CollectionPrograms,
		(*domain.TrainingProgram).SearchText, logger,
		func(owner, name string, items []domain.TrainingProgram) { forward(owner, name, items) })
	s.Theory = NewCollection(st.Theory, CollectionTheory,
		(*domain.TheoryArticle).SearchText, logger,
		func(owner, name string, items []domain.TheoryArticle) { forward(owner, name, items) })

	return s
}

// SetIdentity rebinds all four collections to the given identity. A nil
// identity unbinds everything and clears all caches. Each collection's
// previous watch is fully torn down before the new one opens.
func (s *Session) SetIdentity(ctx context.Context, identity *Identity) {
	s.mu.Lock()
	prev := s.identity
	s.identity = identity
	s.mu.Unlock()

	if identity == nil {
		s.Players.Unbind()
		s.Exercises.Unbind()
		s.Programs.Unbind()
		s.Theory.Unbind()
		if prev != nil {
			s.logger.Info("session unbound", slog.String("coach_id", prev.ID))
		}
		return
	}

	s.Players.Bind(ctx, identity.ID)
	s.Exercises.Bind(ctx, identity.ID)
	s.Programs.Bind(ctx, identity.ID)
	s.Theory.Bind(ctx, identity.ID)

	s.logger.Info("session bound",
		slog.String("coach_id", identity.ID),
		slog.String("email", identity.Email))
}

// Identity returns the currently bound identity, or nil.
func (s *Session) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

// CoachID returns the bound coach id, or "".
func (s *Session) CoachID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return ""
	}
	return s.identity.ID
}

// TheoryTags returns the sorted union of tags across the cached theory
// articles. Duplicates within or across articles collapse to one entry.
func (s *Session) TheoryTags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, article := range s.Theory.Items() {
		for _, tag := range article.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}
