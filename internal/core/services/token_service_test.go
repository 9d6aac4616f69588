package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/core/services"
	"github.com/projectmanage/pm-backend/internal/platform/config"
	"github.com/projectmanage/pm-backend/internal/utils"
)

// --- Mock RefreshTokenRepository ---
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) UpsertForUser(ctx context.Context, candidate domain.RefreshToken, expiresAt time.Time) (*domain.RefreshToken, error) {
	args := m.Called(ctx, candidate, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByID(ctx context.Context, refreshTokenID string) error {
	args := m.Called(ctx, refreshTokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portsrepo.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

// --- Test Suite ---
type TokenServiceTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockRefreshRepo *MockRefreshTokenRepository
	service         portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret-key",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "pm-backend-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.mockRefreshRepo = new(MockRefreshTokenRepository)
	suite.service = services.NewTokenService(suite.cfg, suite.mockRefreshRepo)
}

// --- GenerateAccessToken Tests ---

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_RoundTrip() {
	ctx := context.Background()
	user := &domain.User{
		UserID: uuid.NewString(),
		Email:  "alice@example.com",
		Role:   domain.RoleUser,
	}

	tokenString, expiry, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(tokenString)
	suite.WithinDuration(time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(tokenString, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(user.Email, claims.Subject)
	suite.Equal(domain.RoleUser, claims.Role)
	suite.Equal("pm-backend-test", claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_WrongSecretRejected() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Email: "bob@example.com", Role: domain.RoleAdmin}

	tokenString, _, err := suite.service.GenerateAccessToken(ctx, user)
	suite.Require().NoError(err)

	_, err = utils.ParseAndValidateJWT(tokenString, "some-other-secret")
	suite.Error(err)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_ExpiredTokenRejected() {
	suite.cfg.JWTExpiryDuration = -time.Minute
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Email: "carol@example.com", Role: domain.RoleUser}

	tokenString, _, err := suite.service.GenerateAccessToken(ctx, user)
	suite.Require().NoError(err)

	_, err = utils.ParseAndValidateJWT(tokenString, suite.cfg.JWTSecret)
	suite.Error(err)
	suite.True(utils.IsTokenExpired(tokenString, suite.cfg.JWTSecret))
}

// --- CreateRefreshToken Tests ---

func (suite *TokenServiceTestSuite) TestCreateRefreshToken_NewToken() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRefreshRepo.On("UpsertForUser", ctx, mock.MatchedBy(func(candidate domain.RefreshToken) bool {
		// 32 random bytes hex-encoded.
		return candidate.UserID == userID && len(candidate.Token) == 64 && candidate.RefreshTokenID != ""
	}), mock.AnythingOfType("time.Time")).Return(&domain.RefreshToken{
		RefreshTokenID: uuid.NewString(),
		UserID:         userID,
		Token:          "stored-token-value",
		ExpiresAt:      time.Now().Add(24 * time.Hour),
	}, nil).Once()

	token, err := suite.service.CreateRefreshToken(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(userID, token.UserID)
	suite.Equal("stored-token-value", token.Token)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestCreateRefreshToken_SecondLoginKeepsStoredValue() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.RefreshToken{
		RefreshTokenID: uuid.NewString(),
		UserID:         userID,
		Token:          "first-login-token",
		ExpiresAt:      time.Now().Add(24 * time.Hour),
	}

	// The upsert returns the row as stored: the first login's value with a
	// fresh expiry, regardless of the candidate the second login generated.
	suite.mockRefreshRepo.On("UpsertForUser", ctx, mock.AnythingOfType("domain.RefreshToken"), mock.AnythingOfType("time.Time")).
		Return(existing, nil).Once()

	token, err := suite.service.CreateRefreshToken(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("first-login-token", token.Token)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

// --- VerifyRefreshToken Tests ---

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_Valid() {
	ctx := context.Background()
	stored := &domain.RefreshToken{
		RefreshTokenID: uuid.NewString(),
		UserID:         uuid.NewString(),
		Token:          "valid-token",
		ExpiresAt:      time.Now().Add(time.Hour),
	}

	suite.mockRefreshRepo.On("FindByToken", ctx, "valid-token").Return(stored, nil).Once()

	token, err := suite.service.VerifyRefreshToken(ctx, "valid-token")

	suite.Require().NoError(err)
	suite.Equal(stored, token)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_Unknown() {
	ctx := context.Background()

	suite.mockRefreshRepo.On("FindByToken", ctx, "no-such-token").Return(nil, apperrors.ErrNotFound).Once()

	token, err := suite.service.VerifyRefreshToken(ctx, "no-such-token")

	suite.Require().Error(err)
	suite.Nil(token)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_ExpiredIsDeleted() {
	ctx := context.Background()
	stored := &domain.RefreshToken{
		RefreshTokenID: uuid.NewString(),
		UserID:         uuid.NewString(),
		Token:          "expired-token",
		ExpiresAt:      time.Now().Add(-time.Minute),
	}

	suite.mockRefreshRepo.On("FindByToken", ctx, "expired-token").Return(stored, nil).Once()
	suite.mockRefreshRepo.On("DeleteByID", ctx, stored.RefreshTokenID).Return(nil).Once()

	token, err := suite.service.VerifyRefreshToken(ctx, "expired-token")

	suite.Require().Error(err)
	suite.Nil(token)
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRefreshTokenExpiryBoundary() {
	now := time.Now()

	atBoundary := domain.RefreshToken{ExpiresAt: now}
	suite.False(atBoundary.Expired(now), "a token expiring exactly now still verifies")

	justPast := domain.RefreshToken{ExpiresAt: now.Add(-time.Nanosecond)}
	suite.True(justPast.Expired(now))
}

// --- DeleteRefreshTokenForUser Tests ---

func (suite *TokenServiceTestSuite) TestDeleteRefreshTokenForUser() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRefreshRepo.On("DeleteForUser", ctx, userID).Return(nil).Once()

	err := suite.service.DeleteRefreshTokenForUser(ctx, userID)

	suite.Require().NoError(err)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
