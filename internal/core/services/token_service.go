package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/platform/config"
	"github.com/projectmanage/pm-backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT access tokens
// and the persisted refresh-token lifecycle.
type tokenService struct {
	cfg         *config.Config
	refreshRepo portsrepo.RefreshTokenRepository
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, refreshRepo portsrepo.RefreshTokenRepository) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, refreshRepo: refreshRepo}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user. The
// subject is the user's email; the role travels as a dedicated claim.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.Email, user.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// CreateRefreshToken returns the user's active refresh token with its expiry
// extended, or a brand-new one when none exists. The stored value is what
// callers hand back to clients; a second login keeps the first login's value.
func (s *tokenService) CreateRefreshToken(ctx context.Context, userID string) (*domain.RefreshToken, error) {
	value, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token value: %w", err)
	}

	candidate := domain.RefreshToken{
		RefreshTokenID: uuid.NewString(),
		UserID:         userID,
		Token:          value,
	}
	expiresAt := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	token, err := s.refreshRepo.UpsertForUser(ctx, candidate, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return token, nil
}

// VerifyRefreshToken resolves a refresh-token value and enforces expiry. An
// expired row is deleted before the error is returned, forcing a full
// re-login. A token expiring exactly now still verifies.
func (s *tokenService) VerifyRefreshToken(ctx context.Context, tokenValue string) (*domain.RefreshToken, error) {
	token, err := s.refreshRepo.FindByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if token.Expired(time.Now()) {
		if err := s.refreshRepo.DeleteByID(ctx, token.RefreshTokenID); err != nil {
			return nil, fmt.Errorf("failed to delete expired refresh token: %w", err)
		}
		return nil, apperrors.ErrRefreshTokenExpired
	}

	return token, nil
}

func (s *tokenService) DeleteRefreshTokenForUser(ctx context.Context, userID string) error {
	if err := s.refreshRepo.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete refresh token for user: %w", err)
	}
	return nil
}
