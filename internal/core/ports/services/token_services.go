package services

import (
	"context"
	"time"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// TokenSvcFacade handles access-token issuance and the refresh-token lifecycle.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user carrying subject
	// and role claims, and returns the token plus its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// CreateRefreshToken returns the user's active refresh token with its
	// expiry extended, creating one when none exists. Concurrent logins by
	// the same user race on the single row; the last writer wins.
	CreateRefreshToken(ctx context.Context, userID string) (*domain.RefreshToken, error)

	// VerifyRefreshToken looks up a token by value and checks expiry.
	// Unknown values return apperrors.ErrNotFound; expired rows are deleted
	// and apperrors.ErrRefreshTokenExpired is returned.
	VerifyRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)

	// DeleteRefreshTokenForUser invalidates the user's refresh token on logout.
	DeleteRefreshTokenForUser(ctx context.Context, userID string) error
}
