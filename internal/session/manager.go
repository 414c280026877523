package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
)

// Factory builds a fresh, seeded session.
type Factory func() (*Session, error)

type entry struct {
	session   *Session
	createdAt time.Time
	lastSeen  time.Time
}

// Manager is the registry of open sessions. Sessions never share state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	factory  Factory
	max      int
	now      func() time.Time
}

// NewManager creates a registry. max <= 0 means unbounded.
func NewManager(factory Factory, max int, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessions: make(map[string]*entry),
		factory:  factory,
		max:      max,
		now:      now,
	}
}

// Open builds a new session and returns its id.
func (m *Manager) Open() (string, *Session, error) {
	s, err := m.factory()
	if err != nil {
		return "", nil, fmt.Errorf("build session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.max > 0 && len(m.sessions) >= m.max {
		return "", nil, ErrTooManySessions
	}

	id := uuid.NewString()
	now := m.now()
	m.sessions[id] = &entry{session: s, createdAt: now, lastSeen: now}
	return id, s, nil
}

// Get returns the session with id and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = m.now()
	return e.session, nil
}

// Info describes the session with id without refreshing its idle timer.
func (m *Manager) Info(id string) (domain.SessionInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.sessions[id]
	if !ok {
		return domain.SessionInfo{}, ErrSessionNotFound
	}
	return m.info(id, e), nil
}

// Close discards the session with id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// EvictIdle closes sessions not accessed within idle and returns their ids.
func (m *Manager) EvictIdle(idle time.Duration) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-idle)
	var evicted []string
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	sort.Strings(evicted)
	return evicted
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) info(id string, e *entry) domain.SessionInfo {
	info := domain.SessionInfo{
		ID:         id,
		CreatedAt:  e.createdAt.Unix(),
		LastSeenAt: e.lastSeen.Unix(),
	}
	if u, ok := e.session.Viewer(); ok {
		info.Username = u.Username
	}
	return info
}
