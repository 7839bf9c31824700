package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order_admin/internal/auth"
	"order_admin/internal/models"
	"order_admin/internal/repository"
	"order_admin/internal/session"
)

const (
	// AccessTokenCookie is the httpOnly cookie carrying the signed token.
	AccessTokenCookie = "accessToken"

	userKey    = "currentUser"
	sessionKey = "sessionID"
)

const unauthorizedMessage = "You are not authorized to perform this action."

// Authenticate resolves the cookie token to a full identity record and
// attaches it to the request context. The session must still be live in
// the store; a revoked session fails even if the JWT verifies.
func Authenticate(tokens *auth.Manager, sessions session.Store, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": unauthorizedMessage})
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": unauthorizedMessage})
			return
		}

		if _, err := sessions.Get(c.Request.Context(), claims.SessionID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": unauthorizedMessage})
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": unauthorizedMessage})
			return
		}

		c.Set(userKey, user)
		c.Set(sessionKey, claims.SessionID)
		c.Next()
	}
}

// RequireAdmin allows only ADMIN identities past. Role mismatch is 403,
// distinct from the 401 of a missing or dead credential.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(models.RoleAdmin)
}

// RequireManager allows only MANAGER identities past.
func RequireManager() gin.HandlerFunc {
	return requireRole(models.RoleManager)
}

func requireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": unauthorizedMessage})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity attached by Authenticate, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// SessionID returns the session id attached by Authenticate.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
