package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// principalKey is the key used to store the authenticated principal in the
// Gin context.
const principalKey = contextKey("principal")

// setPrincipal attaches the authenticated principal to the Gin context for
// the remainder of request handling.
func setPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(string(principalKey), p)
}

// GetPrincipalFromContext retrieves the authenticated principal from the Gin
// context. The second return is false for unauthenticated requests.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, exists := c.Get(string(principalKey))
	if !exists {
		return nil, false
	}
	p, ok := val.(domain.Principal)
	if !ok {
		return nil, false
	}
	return p, true
}

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	p, ok := GetPrincipalFromContext(c)
	if !ok {
		return "", false
	}
	return p.UserID(), true
}
