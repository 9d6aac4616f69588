package models

import (
	"database/sql"
	"time"
)

// User is the database row shape for the users table. Nullable columns use
// sql.Null* so that pure OAuth accounts (no password) and pure local accounts
// (no provider id) both round-trip cleanly.
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"`
	Username     string         `db:"username"`
	Name         string         `db:"name"`
	PasswordHash sql.NullString `db:"password_hash"`
	Role         string         `db:"role"`
	Picture      sql.NullString `db:"picture"`
	Provider     string         `db:"provider"`
	ProviderID   sql.NullString `db:"provider_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
