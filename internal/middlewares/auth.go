package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messaging-backend/internal/services"
)

// UsernameKey is the gin context key the auth middleware stores the
// resolved principal under.
const UsernameKey = "username"

// AuthMiddleware resolves the bearer token into a principal through the
// session service and aborts with 401 when it cannot.
func AuthMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
			c.Abort()
			return
		}

		username, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(UsernameKey, username)
		c.Set("token", token)

		c.Next()
	}
}
