package services

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
	"github.com/projectmanage/pm-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser creates a local account from a registration request.
	// Returns apperrors.ErrDuplicate when the email is already on file.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// UpdateProfile updates the user's mutable profile fields.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
}

// UserAuthSvc defines password authentication.
type UserAuthSvc interface {
	// AuthenticateUser verifies an email/password pair. It returns
	// apperrors.ErrUnauthorized for both an unknown email and a hash
	// mismatch, so callers cannot tell the two apart.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// OAuthReconcileSvc maps a verified third-party identity onto a local user row.
type OAuthReconcileSvc interface {
	// ReconcileOAuthUser finds the user by (provider, provider id), creating
	// one when absent and syncing profile fields when present. Idempotent.
	ReconcileOAuthUser(ctx context.Context, assertion domain.OAuthAssertion) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
	OAuthReconcileSvc
}
