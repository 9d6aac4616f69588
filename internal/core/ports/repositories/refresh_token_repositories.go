package repositories

import (
	"context"
	"time"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// RefreshTokenRepository defines persistence operations for refresh tokens.
// The table carries a unique index on user_id, so UpsertForUser is the only
// write path and the at-most-one-per-user invariant holds under concurrent
// logins (last writer wins).
type RefreshTokenRepository interface {
	// UpsertForUser extends the expiry of the user's existing token row, or
	// inserts the candidate row when none exists. The returned token reflects
	// what is now stored: the old token value with the new expiry, or the
	// candidate itself.
	UpsertForUser(ctx context.Context, candidate domain.RefreshToken, expiresAt time.Time) (*domain.RefreshToken, error)

	// FindByToken retrieves a refresh token by its opaque value.
	// Returns apperrors.ErrNotFound if absent.
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)

	// DeleteByID removes a single token row, used when expiry verification fails.
	DeleteByID(ctx context.Context, refreshTokenID string) error

	// DeleteForUser removes the user's token row, used on logout.
	DeleteForUser(ctx context.Context, userID string) error
}
