package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The gateway in front of this service authenticates the caller and
// forwards the verified identity in these headers. Authentication itself
// is out of scope here.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleAdmin = "admin"

	ctxUserKey = "userID"
)

// RequireUser rejects requests without a forwarded identity and stores the
// user id on the context for the handlers.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Set(ctxUserKey, userID)
		c.Next()
	}
}

// RequireAdmin gates the privileged routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(HeaderUserRole) != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// UserID returns the identity stored by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserKey)
}
