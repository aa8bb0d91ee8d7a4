package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "supplement-storefront/internal/service/cart"
)

func getCartHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := cart.Get(c.Request.Context(), currentSession(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func addCartItemHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartsvc.AddItemInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		view, err := cart.AddItem(c.Request.Context(), currentSession(c).ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		view, err := cart.UpdateQuantity(c.Request.Context(), currentSession(c).ID, c.Param("lineId"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func removeCartItemHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := cart.RemoveItem(c.Request.Context(), currentSession(c).ID, c.Param("lineId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

type applyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

func applyPromoHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyPromoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
			return
		}
		view, err := cart.ApplyPromoCode(c.Request.Context(), currentSession(c).ID, req.Code)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func clearCartHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cart.Clear(c.Request.Context(), currentSession(c).ID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
