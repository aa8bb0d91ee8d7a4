package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartsvc "supplement-storefront/internal/service/cart"
	checkoutsvc "supplement-storefront/internal/service/checkout"
	customersvc "supplement-storefront/internal/service/customer"
	productsvc "supplement-storefront/internal/service/product"
	sessionsvc "supplement-storefront/internal/service/session"
)

// Deps collects the services the router needs.
type Deps struct {
	Sessions  *sessionsvc.Service
	Products  *productsvc.Service
	Cart      *cartsvc.Service
	Checkout  *checkoutsvc.Service
	Customers *customersvc.Service
}

// buildRouter wires the storefront API routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/sessions", startSessionHandler(deps.Sessions))
	router.GET("/products", listProductsHandler(deps.Products))
	router.GET("/products/:id", getProductHandler(deps.Products))

	router.POST("/signup", signupHandler(deps.Customers))

	authed := router.Group("/", sessionMiddleware(deps.Sessions))
	{
		authed.POST("/login", loginHandler(deps.Customers, deps.Sessions))
		authed.GET("/me", meHandler(deps.Customers))

		authed.GET("/cart", getCartHandler(deps.Cart))
		authed.POST("/cart/items", addCartItemHandler(deps.Cart))
		authed.PATCH("/cart/items/:lineId", updateCartItemHandler(deps.Cart))
		authed.DELETE("/cart/items/:lineId", removeCartItemHandler(deps.Cart))
		authed.POST("/cart/promo", applyPromoHandler(deps.Cart))
		authed.DELETE("/cart", clearCartHandler(deps.Cart))

		authed.GET("/checkout", getCheckoutHandler(deps.Checkout))
		authed.POST("/checkout/address", submitAddressHandler(deps.Checkout))
		authed.POST("/checkout/payment", submitPaymentHandler(deps.Checkout))
		authed.POST("/checkout/back", checkoutBackHandler(deps.Checkout))
		authed.POST("/checkout/order", placeOrderHandler(deps.Checkout))
	}

	return router
}
