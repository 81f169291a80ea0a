// Package session holds the process-local state for live conversations:
// an opaque session id and the ids of orders placed during it. Sessions
// die with the process; each conversation mints a fresh one.
package session

import (
	"sync"

	"github.com/google/uuid"
)

type Session struct {
	ID       string
	OrderIDs []string
}

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) New() *Session {
	s := &Session{ID: uuid.NewString()}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Ensure returns the session for sid, registering it if the id arrived
// from a caller this process hasn't seen (e.g. after a restart).
func (m *Manager) Ensure(sid string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sid]; ok {
		return s
	}
	s := &Session{ID: sid}
	m.sessions[sid] = s
	return s
}

func (m *Manager) RecordOrder(sid, orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sid]
	if !ok {
		s = &Session{ID: sid}
		m.sessions[sid] = s
	}
	s.OrderIDs = append(s.OrderIDs, orderID)
}

// Orders copies out the order history for sid.
func (m *Manager) Orders(sid string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sid]
	if !ok {
		return nil
	}
	out := make([]string, len(s.OrderIDs))
	copy(out, s.OrderIDs)
	return out
}
