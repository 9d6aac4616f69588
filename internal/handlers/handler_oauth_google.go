package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/middleware"
	"github.com/projectmanage/pm-backend/internal/platform/config"
)

// oauthStateCookieName holds the CSRF state between the login redirect and
// the provider callback.
const oauthStateCookieName = "oauth_state"

// oauthStateCookieMaxAge bounds how long a pending OAuth handshake stays valid.
const oauthStateCookieMaxAge = 600

// GoogleOAuthHandler handles Google OAuth related requests: the redirect
// flow (login + callback) and the SPA code-exchange flow.
type GoogleOAuthHandler struct {
	cfg                *config.Config
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	cfg *config.Config,
	googleOAuthService portssvc.GoogleOAuthSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		cfg:                cfg,
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// ExchangeCodeRequest is the JSON body for the exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeResponse is the successful response for the exchange-code endpoint.
type ExchangeCodeResponse struct {
	Token string `json:"token"`
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(cfg, services.GoogleOAuth, services.User, services.Token)
	googleRoutes := r.Group("/api/oauth2/google")
	{
		googleRoutes.GET("/login", h.LoginGoogle)
		googleRoutes.GET("/callback", h.CallbackGoogle)
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// assertionFromIDToken extracts the fields we reconcile on from a validated
// Google ID token payload.
func assertionFromIDToken(payload *idtoken.Payload) (domain.OAuthAssertion, error) {
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	if email == "" || payload.Subject == "" {
		return domain.OAuthAssertion{}, apperrors.NewInternalServerError("Essential user information missing from Google token.")
	}
	return domain.OAuthAssertion{
		Provider:   domain.ProviderGoogle,
		ProviderID: payload.Subject,
		Email:      email,
		Name:       name,
		Picture:    picture,
	}, nil
}

// LoginGoogle godoc
// @Summary Start Google OAuth login
// @Description Generates a CSRF state, stores it in a short-lived cookie, and redirects the browser to Google's consent screen.
// @Tags oauth
// @Success 302
// @Failure 500 {object} ErrorResponse
// @Router /api/oauth2/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start OAuth login"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, oauthStateCookieMaxAge, "/", "", h.cfg.IsProduction, true)

	c.Redirect(http.StatusFound, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Validates the state, exchanges the code, reconciles the user, issues tokens, and redirects the browser back to the frontend with the access token.
// @Tags oauth
// @Success 302
// @Failure 401 {object} ErrorResponse "State mismatch"
// @Failure 504 {object} ErrorResponse
// @Router /api/oauth2/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.WarnContext(ctx, "OAuth state mismatch on Google callback")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	// One-shot: the state is spent regardless of outcome.
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", h.cfg.IsProduction, true)

	user, err := h.completeGoogleAuth(c, c.Query("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate access token after OAuth callback", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	if _, err := h.tokenService.CreateRefreshToken(ctx, user.UserID); err != nil {
		logger.ErrorContext(ctx, "Failed to create refresh token after OAuth callback", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, accessToken, int(h.cfg.JWTExpiryDuration.Seconds()), "/", "", h.cfg.IsProduction, true)

	redirect := h.cfg.FrontendBaseURL + "/oauth/callback?token=" + url.QueryEscape(accessToken)
	c.Redirect(http.StatusFound, redirect)
}

// ExchangeCodeGoogle godoc
// @Summary Exchange authorization code for access token
// @Description SPA flow: the frontend posts the authorization code it received from Google and gets back an application JWT.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} map[string]ExchangeCodeResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse "Invalid Google ID token"
// @Failure 504 {object} ErrorResponse
// @Router /api/oauth2/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	user, err := h.completeGoogleAuth(c, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate access token for code exchange", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ExchangeCodeResponse{Token: accessToken},
	})
}

// completeGoogleAuth runs the shared tail of both flows: exchange the code,
// validate the ID token, and reconcile the identity onto a local user.
func (h *GoogleOAuthHandler) completeGoogleAuth(c *gin.Context, code string) (*domain.User, error) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	if code == "" {
		return nil, apperrors.NewBadRequestError("Authorization code is required")
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			return nil, apperrors.NewBadRequestError("Invalid or expired authorization code")
		}
		return nil, apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service")
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.ErrorContext(ctx, "ID token not found in Google's token response")
		return nil, apperrors.NewInternalServerError("Failed to retrieve ID token from Google")
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.ErrorContext(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
		return nil, apperrors.NewUnauthorizedError("Invalid Google ID token")
	}

	assertion, err := assertionFromIDToken(payload)
	if err != nil {
		return nil, err
	}

	user, err := h.userService.ReconcileOAuthUser(ctx, assertion)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to reconcile OAuth user", slog.String("error", err.Error()), slog.String("google_user_id", assertion.ProviderID))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.NewInternalServerError("Failed to process user authentication")
	}

	logger.InfoContext(ctx, "User reconciled via Google OAuth", slog.String("user_id", user.UserID))
	return user, nil
}
