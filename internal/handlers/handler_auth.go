package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/dto"
	"github.com/projectmanage/pm-backend/internal/middleware"
	"github.com/projectmanage/pm-backend/internal/platform/config"
)

// loginFailureMessage is the single message for every login failure mode so
// responses never reveal whether an email is registered.
const loginFailureMessage = "Invalid email or password"

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	cfg          *config.Config
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		userService:  us,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(cfg, services.User, services.Token)

	// Rate limit: 5 login attempts per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/user", h.AuthStatus)
	}
}

// issueTokens generates the access and refresh tokens for a user and sets the
// access-token cookie. The cookie lifetime matches the JWT expiry.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) (string, *domain.RefreshToken, error) {
	ctx := c.Request.Context()

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	refreshToken, err := h.tokenService.CreateRefreshToken(ctx, user.UserID)
	if err != nil {
		return "", nil, err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, accessToken, int(h.cfg.JWTExpiryDuration.Seconds()), "/", "", h.cfg.IsProduction, true)

	return accessToken, refreshToken, nil
}

// clearAuthCookies expires the access-token cookie along with every other
// cookie the request carried (stale OAuth state cookies included).
func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
	for _, cookie := range c.Request.Cookies() {
		if cookie.Name == h.cfg.AccessTokenCookieName {
			continue
		}
		c.SetCookie(cookie.Name, "", -1, "/", "", h.cfg.IsProduction, true)
	}
}

// Login godoc
// @Summary User login
// @Description Authenticates a user with email and password, sets the access-token cookie, and returns the token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthFailureResponse
// @Failure 401 {object} dto.AuthFailureResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.AuthFailureResponse{Authenticated: false, Message: loginFailureMessage})
		return
	}

	user, err := h.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		logger.InfoContext(ctx, "Login failed", slog.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, dto.AuthFailureResponse{Authenticated: false, Message: loginFailureMessage})
		return
	}

	accessToken, refreshToken, err := h.issueTokens(c, user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to issue tokens on login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(user, accessToken, refreshToken.Token))
}

// Register godoc
// @Summary Register new user
// @Description Creates a local account and logs the user in immediately.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid request or email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.RegisterUser(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email already registered"})
			return
		}
		logger.ErrorContext(ctx, "Registration failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	accessToken, refreshToken, err := h.issueTokens(c, user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to issue tokens after registration", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthResponse(user, accessToken, refreshToken.Token))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new access token. The refresh token itself is not rotated; the same value is returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Unknown or expired refresh token"
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Refresh token is required"})
		return
	}

	stored, err := h.tokenService.VerifyRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRefreshTokenExpired):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token expired. Please login again"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		default:
			logger.ErrorContext(ctx, "Refresh token verification failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	user, err := h.userService.GetUserByID(ctx, stored.UserID)
	if err != nil {
		logger.ErrorContext(ctx, "Refresh token references missing user", slog.String("user_id", stored.UserID))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate access token on refresh", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, accessToken, int(h.cfg.JWTExpiryDuration.Seconds()), "/", "", h.cfg.IsProduction, true)

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: stored.Token,
		TokenType:    "Bearer",
	})
}

// Logout godoc
// @Summary Log out
// @Description Deletes the caller's refresh token and clears every cookie on the request. Safe to call without a valid session.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if err := h.tokenService.DeleteRefreshTokenForUser(ctx, userID); err != nil {
			// Cookie still gets cleared; losing the row delete only means the
			// refresh token lives until its natural expiry.
			logger.WarnContext(ctx, "Failed to delete refresh token on logout", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// AuthStatus godoc
// @Summary Current authentication status
// @Description Reports whether the request carries a valid principal. Always 200; unauthenticated callers get authenticated=false.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Router /api/auth/user [get]
func (h *AuthHandler) AuthStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, dto.AuthStatusResponse{
		Authenticated: true,
		Name:          principal.DisplayName(),
		Email:         principal.Subject(),
		Picture:       principal.Avatar(),
	})
}
