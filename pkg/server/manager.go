package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrTooManySessions is returned when the session cap is reached.
var ErrTooManySessions = errors.New("server: too many sessions")

// Manager tracks live sessions.
type Manager struct {
	config *Config

	mu       sync.RWMutex
	sessions map[string]*Session

	created uint64
	closed  uint64
	peak    int
}

// NewManager creates a session manager.
func NewManager(config *Config) *Manager {
	return &Manager{
		config:   config,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for the given connection.
func (m *Manager) Create(conn *websocket.Conn) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return nil, ErrTooManySessions
	}

	s := newSession(newSessionID(), conn, m.config)
	s.onClose = func(closed *Session) {
		m.remove(closed.ID)
	}

	m.sessions[s.ID] = s
	m.created++
	if len(m.sessions) > m.peak {
		m.peak = len(m.sessions)
	}
	return s, nil
}

// Get returns a session by ID, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.closed++
	}
}

// CloseAll closes every session. Used during shutdown.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Close()
	}
}

// Sweep closes sessions idle longer than maxIdle.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.RLock()
	var stale []*Session
	for _, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			stale = append(stale, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range stale {
		s.logger.Info("closing idle session")
		s.Close()
	}
	return len(stale)
}

// Stats reports manager counters.
type Stats struct {
	Active       int
	Peak         int
	TotalCreated uint64
	TotalClosed  uint64
}

// Stats returns a snapshot of session counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Active:       len(m.sessions),
		Peak:         m.peak,
		TotalCreated: m.created,
		TotalClosed:  m.closed,
	}
}

// newSessionID generates a cryptographically random session ID.
func newSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
