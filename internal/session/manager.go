package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keeps every live session in memory for the life of the process.
type Manager struct {
	deps    Deps
	maxIdle time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a Manager. Sessions idle longer than maxIdle are dropped
// when new sessions are created; zero keeps them forever.
func NewManager(deps Deps, maxIdle time.Duration) *Manager {
	return &Manager{
		deps:     deps,
		maxIdle:  maxIdle,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session with id, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Create starts a new session with a random id.
func (m *Manager) Create() *Session {
	s := New(uuid.NewString(), m.deps)

	m.mu.Lock()
	m.pruneLocked(time.Now())
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	slog.Debug("Session created", "session_id", s.ID())
	return s
}

// GetOrCreate returns the session with id, or a fresh one when id is unknown.
// created reports whether a new session was made.
func (m *Manager) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s, false
		}
	}
	return m.Create(), true
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) pruneLocked(now time.Time) {
	if m.maxIdle <= 0 {
		return
	}
	for id, s := range m.sessions {
		if now.Sub(s.LastSeen()) > m.maxIdle {
			delete(m.sessions, id)
			slog.Debug("Session expired", "session_id", id)
		}
	}
}
