package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType enumerates the supported promo discount strategies.
type DiscountType string

const (
	// DiscountPercentage applies a percentage-based discount to the subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFlat applies a fixed amount capped at the subtotal.
	DiscountFlat DiscountType = "flat"
)

// PromoRule defines a promo code's discount behaviour. For percentage rules
// Value is the percentage (e.g. 10 for 10%); for flat rules it is the cent
// amount.
type PromoRule struct {
	Code        string
	Type        DiscountType
	Value       decimal.Decimal
	Description string
}

// The storefront runs a small fixed promotion table.
var promoTable = map[string]PromoRule{
	"WELCOME10": {Code: "WELCOME10", Type: DiscountPercentage, Value: decimal.NewFromInt(10), Description: "10% off your first order"},
	"SUPP20":    {Code: "SUPP20", Type: DiscountPercentage, Value: decimal.NewFromInt(20), Description: "20% off sitewide"},
	"FLAT150":   {Code: "FLAT150", Type: DiscountFlat, Value: decimal.NewFromInt(15000), Description: "Flat ₹150 off"},
}

// LookupPromo resolves a promo code, case-insensitively.
func LookupPromo(code string) (PromoRule, bool) {
	rule, ok := promoTable[strings.ToUpper(strings.TrimSpace(code))]
	return rule, ok
}

// DiscountCents computes the discount for a subtotal. Percentage amounts are
// rounded half up to whole cents; the result never exceeds the subtotal.
func (r PromoRule) DiscountCents(subtotalCents int64) int64 {
	if subtotalCents <= 0 {
		return 0
	}
	var amount decimal.Decimal
	switch r.Type {
	case DiscountPercentage:
		amount = decimal.NewFromInt(subtotalCents).Mul(r.Value).Div(decimal.NewFromInt(100)).Round(0)
	case DiscountFlat:
		amount = r.Value
	default:
		return 0
	}
	cents := amount.IntPart()
	if cents > subtotalCents {
		return subtotalCents
	}
	if cents < 0 {
		return 0
	}
	return cents
}
