package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supplement-storefront/internal/domain"
	productsvc "supplement-storefront/internal/service/product"
)

func listProductsHandler(products *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": list, "total": len(list)})
	}
}

func getProductHandler(products *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
