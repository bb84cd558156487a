package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"netflix-clone-backend/models"
	"netflix-clone-backend/services"
)

// CookieName is the cookie the session token travels in.
const CookieName = "token"

const userKey = "currentUser"

// ExtractToken pulls the session token from the request, preferring
// the http-only cookie over an Authorization bearer header.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// Auth rejects requests without a valid session and stores the
// re-fetched user on the context for downstream handlers.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authService.VerifySession(c.Request.Context(), ExtractToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole guards a route group behind a role. Must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user Auth stored on the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
