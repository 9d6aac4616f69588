package domain

import "time"

// RefreshToken is a persisted, opaque credential used solely to obtain a new
// access token. At most one active token exists per user; a later login
// extends the existing row instead of appending a second one.
type RefreshToken struct {
	RefreshTokenID string    `json:"refreshTokenID"`
	UserID         string    `json:"userID"`
	Token          string    `json:"token"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// Expired reports whether the token's expiry has passed. A token whose expiry
// equals now is still valid; it is expired strictly after expires_at.
func (t RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
