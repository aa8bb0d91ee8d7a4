// Package pricing derives cart totals from line items and the active promo.
// Totals are never stored; every read recomputes them so they cannot go
// stale against the underlying lines.
package pricing

import "supplement-storefront/internal/domain"

// Rules carries the configurable pricing knobs. The free-shipping threshold
// and flat fee are unified here instead of being hardcoded per call site.
type Rules struct {
	FreeShippingThresholdCents int64
	ShippingFeeCents           int64
	MaxLineQuantity            int
}

// DefaultRules mirrors the storefront defaults: free shipping from ₹999
// and at most 10 units per line.
func DefaultRules() Rules {
	return Rules{
		FreeShippingThresholdCents: 99900,
		ShippingFeeCents:           4900,
		MaxLineQuantity:            10,
	}
}

// Totals is the derived pricing view of a cart.
type Totals struct {
	TotalItems    int   `json:"totalItems"`
	SubtotalCents int64 `json:"subtotalCents"`
	DiscountCents int64 `json:"discountCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`
}

// Compute derives totals for the given lines and optional promo code.
// An unknown promo code contributes no discount.
func Compute(lines []domain.CartLine, promoCode *string, rules Rules) Totals {
	var t Totals
	for _, line := range lines {
		t.TotalItems += line.Quantity
		t.SubtotalCents += line.UnitPriceCents * int64(line.Quantity)
	}
	if promoCode != nil {
		if rule, ok := LookupPromo(*promoCode); ok {
			t.DiscountCents = rule.DiscountCents(t.SubtotalCents)
		}
	}
	t.ShippingCents = ShippingCents(t.SubtotalCents, rules)
	t.TotalCents = t.SubtotalCents - t.DiscountCents + t.ShippingCents
	return t
}

// ShippingCents is zero once the subtotal reaches the free-shipping
// threshold, otherwise the flat fee. An empty cart ships nothing.
func ShippingCents(subtotalCents int64, rules Rules) int64 {
	if subtotalCents == 0 {
		return 0
	}
	if subtotalCents >= rules.FreeShippingThresholdCents {
		return 0
	}
	return rules.ShippingFeeCents
}

// ClampQuantity forces a requested quantity into [1, max].
func ClampQuantity(q int, rules Rules) int {
	if q < 1 {
		return 1
	}
	if q > rules.MaxLineQuantity {
		return rules.MaxLineQuantity
	}
	return q
}
