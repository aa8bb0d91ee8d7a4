package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"supplement-storefront/internal/domain"
	checkoutsvc "supplement-storefront/internal/service/checkout"
)

// respondError maps service errors onto HTTP statuses. Unknown errors
// become an opaque 500 so internals never leak to shoppers.
func respondError(c *gin.Context, err error) {
	var verr *checkoutsvc.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, domain.ErrInvalidPromoCode):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrCheckoutInProgress),
		errors.Is(err, domain.ErrCheckoutComplete),
		errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
