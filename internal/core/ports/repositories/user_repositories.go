package repositories

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Lookups by email, username, and (provider, provider id) are all backed by
// unique indexes and assumed fast.
type UserRepository interface {
	// SaveUser inserts a new user or updates an existing one by primary key.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound if absent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email. Returns apperrors.ErrNotFound if absent.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderDetails retrieves a user by its third-party identity
	// key. Returns apperrors.ErrNotFound if absent.
	FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error)

	// UpdateUser persists changes to mutable profile fields.
	UpdateUser(ctx context.Context, user domain.User) error
}
