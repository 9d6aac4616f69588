package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/middleware"
	"github.com/projectmanage/pm-backend/internal/platform/config"
	"github.com/projectmanage/pm-backend/internal/utils"
)

// --- Mock UserReaderSvc ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserReaderSvc = (*MockUserReader)(nil)

// --- Test Suite ---
type AuthenticatorTestSuite struct {
	suite.Suite
	cfg       *config.Config
	mockUsers *MockUserReader
	router    *gin.Engine
}

func (suite *AuthenticatorTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:             "test-secret",
		JWTExpiryDuration:     time.Hour,
		JWTIssuer:             "pm-backend-test",
		AccessTokenCookieName: "Authorization",
		AuthSkipPaths:         []string{"/api/auth/refresh"},
	}
	suite.mockUsers = new(MockUserReader)

	suite.router = gin.New()
	suite.router.Use(middleware.Authenticator(suite.cfg, suite.mockUsers))

	// Probe endpoint reporting whether a principal was attached.
	suite.router.GET("/probe", func(c *gin.Context) {
		if p, ok := middleware.GetPrincipalFromContext(c); ok {
			c.JSON(http.StatusOK, gin.H{"userID": p.UserID()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": ""})
	})
	suite.router.POST("/api/auth/refresh", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	suite.router.GET("/guarded", middleware.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	suite.router.GET("/admin", middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func (suite *AuthenticatorTestSuite) signToken(email, role string) string {
	token, err := utils.GenerateJWT(email, role, suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return token
}

func (suite *AuthenticatorTestSuite) TestNoToken_ProceedsUnauthenticated() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"userID":""`)
}

func (suite *AuthenticatorTestSuite) TestMalformedToken_ProceedsUnauthenticated() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"userID":""`)
}

func (suite *AuthenticatorTestSuite) TestExpiredToken_ProceedsUnauthenticated() {
	expired, err := utils.GenerateJWT("alice@example.com", domain.RoleUser, suite.cfg.JWTSecret, -time.Minute, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+expired)

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"userID":""`)
}

func (suite *AuthenticatorTestSuite) TestValidTokenUnknownUser_ProceedsUnauthenticated() {
	token := suite.signToken("ghost@example.com", domain.RoleUser)
	suite.mockUsers.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"userID":""`)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *AuthenticatorTestSuite) TestValidToken_AttachesPrincipal() {
	userID := uuid.NewString()
	token := suite.signToken("alice@example.com", domain.RoleUser)
	suite.mockUsers.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{UserID: userID, Email: "alice@example.com", Role: domain.RoleUser, Provider: domain.ProviderLocal}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), userID)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *AuthenticatorTestSuite) TestCookieTakesPrecedenceOverHeader() {
	userID := uuid.NewString()
	cookieToken := suite.signToken("cookie@example.com", domain.RoleUser)
	suite.mockUsers.On("GetUserByEmail", mock.Anything, "cookie@example.com").
		Return(&domain.User{UserID: userID, Email: "cookie@example.com", Role: domain.RoleUser, Provider: domain.ProviderLocal}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "Authorization", Value: cookieToken})
	req.Header.Set("Authorization", "Bearer "+suite.signToken("header@example.com", domain.RoleUser))

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), userID)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *AuthenticatorTestSuite) TestSkipPath_TokenIgnored() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	// Even a garbage token on a skip path never reaches validation.
	req.Header.Set("Authorization", "Bearer garbage")

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockUsers.AssertNotCalled(suite.T(), "GetUserByEmail", mock.Anything, mock.Anything)
}

func (suite *AuthenticatorTestSuite) TestRequireAuth_RejectsUnauthenticated() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Authentication required")
}

func (suite *AuthenticatorTestSuite) TestRequireRole_RejectsWrongRole() {
	token := suite.signToken("user@example.com", domain.RoleUser)
	suite.mockUsers.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&domain.User{UserID: uuid.NewString(), Email: "user@example.com", Role: domain.RoleUser, Provider: domain.ProviderLocal}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "Insufficient role")
}

func (suite *AuthenticatorTestSuite) TestRequireRole_AllowsAdmin() {
	token := suite.signToken("admin@example.com", domain.RoleAdmin)
	suite.mockUsers.On("GetUserByEmail", mock.Anything, "admin@example.com").
		Return(&domain.User{UserID: uuid.NewString(), Email: "admin@example.com", Role: domain.RoleAdmin, Provider: domain.ProviderLocal}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func TestAuthenticatorTestSuite(t *testing.T) {
	suite.Run(t, new(AuthenticatorTestSuite))
}
