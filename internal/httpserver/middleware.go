package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sessionsvc "supplement-storefront/internal/service/session"
)

const (
	sessionCtxKey      = "storefront.session"
	sessionTokenCtxKey = "storefront.sessionToken"
)

// sessionMiddleware resolves the bearer token into a session and aborts
// with 401 when it is missing or stale.
func sessionMiddleware(sessions *sessionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session token required"})
			return
		}
		sess, err := sessions.Lookup(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, sessionsvc.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Set(sessionCtxKey, sess)
		c.Set(sessionTokenCtxKey, token)
		c.Next()
	}
}

func currentSession(c *gin.Context) sessionsvc.Session {
	v, _ := c.Get(sessionCtxKey)
	sess, _ := v.(sessionsvc.Session)
	return sess
}

func currentSessionToken(c *gin.Context) string {
	v, _ := c.Get(sessionTokenCtxKey)
	token, _ := v.(string)
	return token
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
