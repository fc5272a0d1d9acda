// Package middleware carries the gin middleware shared by every API route:
// bearer-token auth for the owner account and the redis-backed rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/martalonghi/aura-wellness-engine/internal/core/services"
)

// ContextUserIDKey is where AuthMiddleware stores the authenticated owner's
// id for downstream handlers.
const ContextUserIDKey = "authUserID"

// AuthMiddleware rejects any request that does not carry a valid bearer
// token for the owner account.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthorized(c, "malformed authorization header")
			return
		}

		userID, err := tokens.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// GetUserID reads the owner id AuthMiddleware stored on the request context.
func GetUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok
}
