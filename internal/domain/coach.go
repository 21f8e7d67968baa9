// Package domain defines the core record types managed by the LaTateni store.
package domain

import "time"

// Coach represents an authenticated coach account.
// Coaches own players, exercises, training programs, and theory articles;
// a record is only ever visible to the coach that created it.
type Coach struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Session is a persisted refresh-token record for a coach.
type Session struct {
	ID               string    `json:"id"`
	CoachID          string    `json:"coach_id"`
	RefreshTokenHash string    `json:"refresh_token_hash"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsExpired reports whether the session's refresh token has lapsed.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
