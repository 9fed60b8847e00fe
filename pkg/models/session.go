package models

import (
	"time"
)

// UserSession represents one signed-in client of the gallery. Drive access
// goes through the shared service account, so the session only carries the
// user's identity.
type UserSession struct {
	SessionID    string    `json:"session_id"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// IsExpired checks if the session has expired (24-hour idle TTL)
func (s *UserSession) IsExpired() bool {
	return time.Since(s.LastAccessed) > 24*time.Hour
}

// UpdateLastAccessed updates the last accessed timestamp
func (s *UserSession) UpdateLastAccessed() {
	s.LastAccessed = time.Now()
}
