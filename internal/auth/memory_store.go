package auth

import (
	"sync"
	"time"

	"github.com/programista-nautil/galeria-app/pkg/models"
)

// MemoryStore provides in-memory storage for OAuth states and sessions.
// Nothing here survives a restart; users simply sign in again.
type MemoryStore struct {
	// OAuth states for CSRF protection (short-lived)
	states map[string]*OAuthState // state -> OAuthState

	// User sessions (long-lived)
	sessions map[string]*models.UserSession // sessionID -> session

	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		states:   make(map[string]*OAuthState),
		sessions: make(map[string]*models.UserSession),
	}

	go store.startCleanupRoutine()

	return store
}

// === OAuth State Management (CSRF Protection) ===

func (m *MemoryStore) GenerateState() (*OAuthState, error) {
	state, err := GenerateSecureState()
	if err != nil {
		return nil, err
	}

	oauthState := &OAuthState{
		State:     state,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.states[state] = oauthState
	return oauthState, nil
}

func (m *MemoryStore) ValidateState(state string) (*OAuthState, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	oauthState, exists := m.states[state]
	if !exists {
		return nil, ErrInvalidState
	}

	if !oauthState.IsValid() {
		return nil, ErrStateExpired
	}

	return oauthState, nil
}

func (m *MemoryStore) DeleteState(state string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.states, state)
}

// === Session Management ===

func (m *MemoryStore) StoreSession(session *models.UserSession) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.LastAccessed.IsZero() {
		session.LastAccessed = time.Now()
	}

	m.sessions[session.SessionID] = session
}

func (m *MemoryStore) GetSession(sessionID string) (*models.UserSession, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		delete(m.sessions, sessionID)
		return nil, ErrSessionExpired
	}

	session.UpdateLastAccessed()

	return session, nil
}

func (m *MemoryStore) DeleteSession(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.sessions, sessionID)
}

func (m *MemoryStore) SessionCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.sessions)
}

func (m *MemoryStore) startCleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanupExpiredSessions()
		m.cleanupExpiredStates()
	}
}

func (m *MemoryStore) cleanupExpiredSessions() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for sessionID, session := range m.sessions {
		if session.IsExpired() {
			delete(m.sessions, sessionID)
		}
	}
}

func (m *MemoryStore) cleanupExpiredStates() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for state, oauthState := range m.states {
		if !oauthState.IsValid() {
			delete(m.states, state)
		}
	}
}
