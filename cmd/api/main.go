package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"supplement-storefront/internal/config"
	"supplement-storefront/internal/db"
	"supplement-storefront/internal/httpserver"
	"supplement-storefront/internal/pricing"
	cartrepo "supplement-storefront/internal/repository/cart"
	customerrepo "supplement-storefront/internal/repository/customer"
	orderrepo "supplement-storefront/internal/repository/order"
	productrepo "supplement-storefront/internal/repository/product"
	cartsvc "supplement-storefront/internal/service/cart"
	checkoutsvc "supplement-storefront/internal/service/checkout"
	customersvc "supplement-storefront/internal/service/customer"
	ordersvc "supplement-storefront/internal/service/order"
	productsvc "supplement-storefront/internal/service/product"
	sessionsvc "supplement-storefront/internal/service/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rules := pricing.Rules{
		FreeShippingThresholdCents: cfg.FreeShippingThresholdCents,
		ShippingFeeCents:           cfg.ShippingFeeCents,
		MaxLineQuantity:            cfg.MaxLineQuantity,
	}

	productRepo := productrepo.NewPostgres(dbpool)
	productService := productsvc.New(productRepo)
	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo, productRepo, rules)
	customerRepo := customerrepo.NewPostgres(dbpool)
	customerService := customersvc.New(customerRepo)
	orderRepo := orderrepo.NewPostgres(dbpool)
	orderGateway := ordersvc.New(orderRepo)
	checkoutService := checkoutsvc.New(cartService, customerService, orderGateway)
	sessionService := sessionsvc.New()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:  sessionService,
		Products:  productService,
		Cart:      cartService,
		Checkout:  checkoutService,
		Customers: customerService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
