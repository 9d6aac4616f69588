package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/platform/config"
	"github.com/projectmanage/pm-backend/internal/utils"
)

// Authenticator creates the per-request authentication gate. It extracts an
// access token from the named cookie first, then from the Authorization
// header, validates it, and resolves the subject to a user. On any failure —
// no token, expired or malformed token, unknown user — the request proceeds
// unauthenticated; authorization is enforced later, per route, by RequireAuth
// and RequireRole. The middleware never aborts a request.
func Authenticator(cfg *config.Config, users portssvc.UserReaderSvc) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.AuthSkipPaths))
	for _, p := range cfg.AuthSkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := extractToken(c, cfg.AccessTokenCookieName)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, cfg.JWTSecret)
		if err != nil {
			// Fail open: an expired or malformed token is treated the same
			// as no token. Route-level guards produce the 401/403.
			logger.Debug("Token rejected, proceeding unauthenticated", slog.String("error", err.Error()))
			c.Next()
			return
		}

		user, err := users.GetUserByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("User lookup failed during authentication", slog.String("error", err.Error()))
			}
			c.Next()
			return
		}

		principal := domain.NewPrincipal(*user)
		setPrincipal(c, principal)

		enriched := logger.With(slog.String("user_id", principal.UserID()))
		c.Request = c.Request.WithContext(
			contextWithLogger(c.Request.Context(), enriched),
		)

		c.Next()
	}
}

// extractToken searches request cookies for the named cookie first, then
// falls back to an "Authorization: Bearer <token>" header.
func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
