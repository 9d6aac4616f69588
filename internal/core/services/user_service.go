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
	"github.com/projectmanage/pm-backend/internal/dto"
	"github.com/projectmanage/pm-backend/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates the user service facade.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// RegisterUser creates a local account. The username of a local account is its
// email; the two diverge only for provider accounts linked later.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	_, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.ErrDuplicate
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Username:     req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Provider:     domain.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// AuthenticateUser verifies an email/password pair. Unknown email, an
// OAuth-only account without a password, and a wrong password all return the
// same ErrUnauthorized so callers cannot distinguish them.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Picture != nil {
		user.Picture = *req.Picture
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ReconcileOAuthUser maps a verified provider identity onto a local user row.
// The canonical identity key is the (provider, provider id) pair. When no row
// matches it but one matches the asserted email, the provider identity is
// linked onto that account instead of creating a duplicate. The provider's
// assertion is the source of truth for email, name, and (when non-empty)
// picture on every login.
func (s *userService) ReconcileOAuthUser(ctx context.Context, assertion domain.OAuthAssertion) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, assertion.Provider, assertion.ProviderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user by provider details: %w", err)
		}
		user, err = s.userRepo.FindUserByEmail(ctx, assertion.Email)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to look up user by email: %w", err)
			}
			return s.createOAuthUser(ctx, assertion)
		}
	}

	user.Email = assertion.Email
	user.Name = assertion.Name
	user.Provider = assertion.Provider
	user.ProviderID = assertion.ProviderID
	if assertion.Picture != "" {
		user.Picture = assertion.Picture
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to sync OAuth user: %w", err)
	}
	return user, nil
}

func (s *userService) createOAuthUser(ctx context.Context, assertion domain.OAuthAssertion) (*domain.User, error) {
	now := time.Now()
	user := domain.User{
		UserID:     uuid.NewString(),
		Email:      assertion.Email,
		Username:   assertion.Email,
		Name:       assertion.Name,
		Role:       domain.RoleUser,
		Picture:    assertion.Picture,
		Provider:   assertion.Provider,
		ProviderID: assertion.ProviderID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create OAuth user: %w", err)
	}
	return &user, nil
}
