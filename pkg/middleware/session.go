package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionIDKey     = "session_id"
	UsernameKey      = "username"
	SessionHeaderKey = "X-Session-ID"
)

// RequireSession returns a Gin middleware that requires a well-formed
// session id in the X-Session-ID header. Whether the session still exists is
// up to the handler.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(SessionHeaderKey))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "missing session header",
				},
			})
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "invalid session id",
				},
			})
			return
		}

		c.Set(SessionIDKey, id.String())
		c.Next()
	}
}

// GetSessionID extracts the session id from Gin context.
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// SetUsername records the session viewer for request logging.
func SetUsername(c *gin.Context, username string) {
	if username != "" {
		c.Set(UsernameKey, username)
	}
}

// GetUsername extracts the viewer's username from Gin context.
func GetUsername(c *gin.Context) string {
	return c.GetString(UsernameKey)
}
