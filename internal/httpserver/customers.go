package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "supplement-storefront/internal/service/customer"
	sessionsvc "supplement-storefront/internal/service/session"
)

func signupHandler(customers *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customersvc.SignupInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		created, err := customers.Signup(c.Request.Context(), req)
		if err != nil {
			// Signup input errors are plain validation messages.
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(customers *customersvc.Service, sessions *sessionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		cust, err := customers.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := sessions.AttachCustomer(c.Request.Context(), currentSessionToken(c), cust.ID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func meHandler(customers *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess.CustomerID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}
		cust, err := customers.GetByID(c.Request.Context(), sess.CustomerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}
