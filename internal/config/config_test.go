package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.FreeShippingThresholdCents != 99900 || cfg.ShippingFeeCents != 4900 {
		t.Fatalf("shipping defaults: %d / %d", cfg.FreeShippingThresholdCents, cfg.ShippingFeeCents)
	}
	if cfg.MaxLineQuantity != 10 {
		t.Fatalf("MaxLineQuantity = %d", cfg.MaxLineQuantity)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "30")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com")
	t.Setenv("FREE_SHIPPING_THRESHOLD_CENTS", "150000")
	t.Setenv("MAX_LINE_QUANTITY", "5")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.example.com" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.FreeShippingThresholdCents != 150000 {
		t.Fatalf("FreeShippingThresholdCents = %d", cfg.FreeShippingThresholdCents)
	}
	if cfg.MaxLineQuantity != 5 {
		t.Fatalf("MaxLineQuantity = %d", cfg.MaxLineQuantity)
	}
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SHIPPING_FEE_CENTS", "not-a-number")
	cfg := FromEnv()
	if cfg.ShippingFeeCents != 4900 {
		t.Fatalf("ShippingFeeCents = %d, want default on parse failure", cfg.ShippingFeeCents)
	}
}
