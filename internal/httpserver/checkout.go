package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supplement-storefront/internal/domain"
	checkoutsvc "supplement-storefront/internal/service/checkout"
)

func getCheckoutHandler(checkout *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		state, err := checkout.Get(c.Request.Context(), sess.ID, sess.CustomerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func submitAddressHandler(checkout *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutsvc.AddressInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		state, err := checkout.SubmitAddress(c.Request.Context(), currentSession(c).ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func submitPaymentHandler(checkout *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutsvc.PaymentInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		state, err := checkout.SubmitPayment(c.Request.Context(), currentSession(c).ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

type checkoutBackRequest struct {
	Step string `json:"step" binding:"required"`
}

func checkoutBackHandler(checkout *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutBackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "step required"})
			return
		}
		state, err := checkout.Back(c.Request.Context(), currentSession(c).ID, domain.CheckoutStep(req.Step))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func placeOrderHandler(checkout *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := checkout.PlaceOrder(c.Request.Context(), currentSession(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, state)
	}
}
