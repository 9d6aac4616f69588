package models

import "time"

// RefreshToken is the database row shape for the refresh_tokens table.
// user_id carries a UNIQUE constraint so upserts keep one row per user.
type RefreshToken struct {
	RefreshTokenID string    `db:"refresh_token_id"`
	UserID         string    `db:"user_id"`
	Token          string    `db:"token"`
	ExpiresAt      time.Time `db:"expires_at"`
}
