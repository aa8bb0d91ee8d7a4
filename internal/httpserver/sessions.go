package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionsvc "supplement-storefront/internal/service/session"
)

func startSessionHandler(sessions *sessionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, sess, err := sessions.Start(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"token":     token,
			"expiresAt": sess.ExpiresAt,
		})
	}
}
