package usecase

import (
	"errors"
	"sync"
	"time"

	"farmlot/services/admin/internal/workspace"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("editor session not found")

const sessionTTL = 30 * time.Minute

// EditorSession pairs one open listing editor with its photo workspace.
// A session with an empty ListingID is creating a new listing. mu
// serializes workspace mutations: the manager's lock only covers the
// session map, so two requests against the same session must take the
// session lock before touching its workspace.
type EditorSession struct {
	ID        string
	ListingID string
	Workspace *workspace.Workspace

	mu        sync.Mutex
	createdAt time.Time
}

// SessionManager owns every open editor session. Sessions expire after
// sessionTTL; expired entries are swept lazily on access so abandoned
// editors cannot pin photo bytes in memory forever.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*EditorSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*EditorSession),
	}
}

func (m *SessionManager) Open(listingID string) *EditorSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()

	session := &EditorSession{
		ID:        uuid.New().String(),
		ListingID: listingID,
		Workspace: workspace.New(),
		createdAt: time.Now(),
	}
	m.sessions[session.ID] = session
	return session
}

func (m *SessionManager) Get(sessionID string) (*EditorSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *SessionManager) Close(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	session.Workspace.Release()
	delete(m.sessions, sessionID)
	return nil
}

func (m *SessionManager) sweepLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for id, session := range m.sessions {
		if session.createdAt.Before(cutoff) {
			session.Workspace.Release()
			delete(m.sessions, id)
		}
	}
}
