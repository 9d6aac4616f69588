package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/core/services"
	"github.com/projectmanage/pm-backend/internal/dto"
	"github.com/projectmanage/pm-backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- RegisterUser Tests ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == req.Email &&
			user.Username == req.Email &&
			user.Name == req.Name &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password &&
			user.Role == domain.RoleUser &&
			user.Provider == domain.ProviderLocal
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash), "stored hash must verify the original password")
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "taken@example.com", Password: "password123", Name: "Bob"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).
		Return(&domain.User{UserID: uuid.NewString(), Email: req.Email}, nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "correct-horse-battery"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "alice@example.com",
		PasswordHash: hash,
		Provider:     domain.ProviderLocal,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, stored.Email, password)

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_FailureModesIndistinguishable() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the-real-password")
	suite.Require().NoError(err)

	// Unknown email.
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()
	_, errUnknown := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	// Wrong password.
	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").
		Return(&domain.User{UserID: uuid.NewString(), Email: "alice@example.com", PasswordHash: hash}, nil).Once()
	_, errWrongPass := suite.service.AuthenticateUser(ctx, "alice@example.com", "wrong-password")

	// OAuth-only account with no local password.
	suite.mockUserRepo.On("FindUserByEmail", ctx, "oauth@example.com").
		Return(&domain.User{UserID: uuid.NewString(), Email: "oauth@example.com", Provider: domain.ProviderGoogle}, nil).Once()
	_, errNoPassword := suite.service.AuthenticateUser(ctx, "oauth@example.com", "anything")

	// All three failure modes yield the identical error.
	suite.ErrorIs(errUnknown, apperrors.ErrUnauthorized)
	suite.ErrorIs(errWrongPass, apperrors.ErrUnauthorized)
	suite.ErrorIs(errNoPassword, apperrors.ErrUnauthorized)
	suite.Equal(errUnknown.Error(), errWrongPass.Error())
	suite.Equal(errWrongPass.Error(), errNoPassword.Error())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- ReconcileOAuthUser Tests ---

func (suite *UserServiceTestSuite) TestReconcileOAuthUser_ExistingByProviderIdentity() {
	ctx := context.Background()
	assertion := domain.OAuthAssertion{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-123",
		Email:      "alice@example.com",
		Name:       "Alice Renamed",
		Picture:    "https://example.com/new.png",
	}
	existing := &domain.User{
		UserID:     uuid.NewString(),
		Email:      "old@example.com",
		Username:   "old@example.com",
		Name:       "Alice",
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-123",
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-123").
		Return(existing, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == existing.UserID &&
			user.Email == assertion.Email &&
			user.Name == assertion.Name &&
			user.Picture == assertion.Picture
	})).Return(nil).Once()

	user, err := suite.service.ReconcileOAuthUser(ctx, assertion)

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID, "provider identity resolves to the same account on every login")
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestReconcileOAuthUser_LinksByEmail() {
	ctx := context.Background()
	assertion := domain.OAuthAssertion{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-456",
		Email:      "local@example.com",
		Name:       "Local User",
	}
	localAccount := &domain.User{
		UserID:   uuid.NewString(),
		Email:    "local@example.com",
		Username: "local@example.com",
		Provider: domain.ProviderLocal,
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-456").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "local@example.com").Return(localAccount, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == localAccount.UserID &&
			user.Provider == domain.ProviderGoogle &&
			user.ProviderID == "google-sub-456"
	})).Return(nil).Once()

	user, err := suite.service.ReconcileOAuthUser(ctx, assertion)

	suite.Require().NoError(err)
	suite.Equal(localAccount.UserID, user.UserID, "existing email links instead of creating a duplicate")
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestReconcileOAuthUser_CreatesNewUser() {
	ctx := context.Background()
	assertion := domain.OAuthAssertion{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-789",
		Email:      "new@example.com",
		Name:       "New User",
		Picture:    "https://example.com/pic.png",
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-789").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == assertion.Email &&
			user.Name == assertion.Name &&
			user.Provider == domain.ProviderGoogle &&
			user.ProviderID == assertion.ProviderID &&
			user.Role == domain.RoleUser &&
			user.PasswordHash == ""
	})).Return(nil).Once()

	user, err := suite.service.ReconcileOAuthUser(ctx, assertion)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestReconcileOAuthUser_EmptyPictureKeepsExisting() {
	ctx := context.Background()
	assertion := domain.OAuthAssertion{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-123",
		Email:      "alice@example.com",
		Name:       "Alice",
	}
	existing := &domain.User{
		UserID:     uuid.NewString(),
		Email:      "alice@example.com",
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-123",
		Picture:    "https://example.com/kept.png",
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-123").
		Return(existing, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Picture == "https://example.com/kept.png"
	})).Return(nil).Once()

	user, err := suite.service.ReconcileOAuthUser(ctx, assertion)

	suite.Require().NoError(err)
	suite.Equal("https://example.com/kept.png", user.Picture)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateProfile Tests ---

func (suite *UserServiceTestSuite) TestUpdateProfile_PartialUpdate() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID, Name: "Before", Picture: "https://example.com/old.png"}
	newName := "After"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Name == newName && user.Picture == "https://example.com/old.png"
	})).Return(nil).Once()

	user, err := suite.service.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.Equal("https://example.com/old.png", user.Picture, "omitted fields stay untouched")
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
