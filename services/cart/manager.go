package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNoSession is returned when a store is requested without a session id.
var ErrNoSession = errors.New("cart: missing session id")

// StorageFactory binds the persistence port to a session id.
type StorageFactory func(sessionID string) SessionStorage

type session struct {
	mu       sync.Mutex
	store    *Store
	lastSeen time.Time
	inUse    int
}

// Manager owns the live Store of every active session. Calls for the same session are
// serialised; different sessions proceed in parallel.
type Manager struct {
	factory StorageFactory
	logger  *zap.Logger
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager(factory StorageFactory, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		factory:  factory,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// WithStore runs fn with exclusive access to the session's store, creating and
// rehydrating it on first use.
func (m *Manager) WithStore(ctx context.Context, sessionID string, fn func(*Store) error) error {
	if sessionID == "" {
		return ErrNoSession
	}
	sess := m.acquire(sessionID)
	defer m.release(sess)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.store == nil {
		sess.store = NewStore(ctx, m.factory(sessionID), m.logger.With(zap.String("session", sessionID)))
	}
	return fn(sess.store)
}

func (m *Manager) acquire(sessionID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		sess = &session{}
		m.sessions[sessionID] = sess
	}
	sess.inUse++
	sess.lastSeen = m.now()
	return sess
}

func (m *Manager) release(sess *session) {
	m.mu.Lock()
	sess.inUse--
	sess.lastSeen = m.now()
	m.mu.Unlock()
}

// Sweep drops stores idle for longer than the ttl. The persisted entry is kept and
// a later call rehydrates from it.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	evicted := 0
	for id, sess := range m.sessions {
		if sess.inUse == 0 && sess.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Active reports the number of live stores.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps idle sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug("cart: evicted idle sessions", zap.Int("count", n), zap.Int("active", m.Active()))
			}
		}
	}
}
