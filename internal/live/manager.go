package live

import (
	"context"
	"log/slog"
	"sync"

	"github.com/latateni/latateni-server/internal/store"
)

// Manager keeps at most one bound Session per coach. Sessions are created
// lazily on first use after sign-in and dropped on sign-out or shutdown.
// Watches are bound to the manager's own lifetime, not to any request.
type Manager struct {
	store   *store.Store
	logger  *slog.Logger
	emitter Emitter

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager. emitter may be nil.
func NewManager(st *store.Store, logger *slog.Logger, emitter Emitter) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		store:    st,
		logger:   logger,
		emitter:  emitter,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// Session returns the coach's bound session, creating and binding one if
// none exists yet.
func (m *Manager) Session(identity Identity) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[identity.ID]; ok {
		return s
	}

	s := NewSession(m.store, m.logger, m.emitter)
	s.SetIdentity(m.ctx, &identity)
	m.sessions[identity.ID] = s
	return s
}

// Get returns the coach's session if one is bound, or nil.
func (m *Manager) Get(coachID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[coachID]
}

// Drop unbinds and removes the coach's session. Dropping an absent coach is
// a no-op.
func (m *Manager) Drop(coachID string) {
	m.mu.Lock()
	s, ok := m.sessions[coachID]
	delete(m.sessions, coachID)
	m.mu.Unlock()

	if ok {
		s.SetIdentity(m.ctx, nil)
	}
}

// Close unbinds every session. Used at shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.SetIdentity(m.ctx, nil)
	}
	m.cancel()

	m.logger.Info("live sessions closed", slog.Int("count", len(sessions)))
}
