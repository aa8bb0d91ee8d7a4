package pricing

import (
	"testing"

	"supplement-storefront/internal/domain"
)

func testRules() Rules {
	return Rules{
		FreeShippingThresholdCents: 99900,
		ShippingFeeCents:           4900,
		MaxLineQuantity:            10,
	}
}

func line(price int64, qty int) domain.CartLine {
	return domain.CartLine{UnitPriceCents: price, Quantity: qty}
}

func TestComputeEmptyCart(t *testing.T) {
	totals := Compute(nil, nil, testRules())
	if totals.TotalItems != 0 || totals.SubtotalCents != 0 || totals.TotalCents != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
	if totals.ShippingCents != 0 {
		t.Fatalf("empty cart must not be charged shipping, got %d", totals.ShippingCents)
	}
}

func TestComputeSubtotalIsSumOfLines(t *testing.T) {
	lines := []domain.CartLine{line(239900, 1), line(89900, 3)}
	totals := Compute(lines, nil, testRules())
	want := int64(239900 + 3*89900)
	if totals.SubtotalCents != want {
		t.Fatalf("subtotal = %d, want %d", totals.SubtotalCents, want)
	}
	if totals.TotalItems != 4 {
		t.Fatalf("totalItems = %d, want 4", totals.TotalItems)
	}
}

func TestComputeTotalEqualsSubtotalMinusDiscountPlusShipping(t *testing.T) {
	code := "WELCOME10"
	lines := []domain.CartLine{line(50000, 1)}
	totals := Compute(lines, &code, testRules())
	if totals.DiscountCents != 5000 {
		t.Fatalf("discount = %d, want 5000", totals.DiscountCents)
	}
	if totals.ShippingCents != 4900 {
		t.Fatalf("shipping = %d, want 4900 below threshold", totals.ShippingCents)
	}
	want := totals.SubtotalCents - totals.DiscountCents + totals.ShippingCents
	if totals.TotalCents != want {
		t.Fatalf("total = %d, want %d", totals.TotalCents, want)
	}
}

func TestComputeFreeShippingAtThreshold(t *testing.T) {
	rules := testRules()
	totals := Compute([]domain.CartLine{line(rules.FreeShippingThresholdCents, 1)}, nil, rules)
	if totals.ShippingCents != 0 {
		t.Fatalf("shipping = %d, want 0 at threshold", totals.ShippingCents)
	}
	totals = Compute([]domain.CartLine{line(rules.FreeShippingThresholdCents-1, 1)}, nil, rules)
	if totals.ShippingCents != rules.ShippingFeeCents {
		t.Fatalf("shipping = %d, want flat fee below threshold", totals.ShippingCents)
	}
}

func TestComputeUnknownPromoContributesNothing(t *testing.T) {
	code := "NOPE"
	totals := Compute([]domain.CartLine{line(50000, 1)}, &code, testRules())
	if totals.DiscountCents != 0 {
		t.Fatalf("discount = %d, want 0 for unknown code", totals.DiscountCents)
	}
}

func TestLookupPromoNormalizesCase(t *testing.T) {
	rule, ok := LookupPromo("  welcome10 ")
	if !ok {
		t.Fatalf("expected lookup to succeed")
	}
	if rule.Code != "WELCOME10" {
		t.Fatalf("code = %q, want WELCOME10", rule.Code)
	}
}

func TestDiscountFlatCappedAtSubtotal(t *testing.T) {
	rule, ok := LookupPromo("FLAT150")
	if !ok {
		t.Fatalf("expected FLAT150 to exist")
	}
	if got := rule.DiscountCents(10000); got != 10000 {
		t.Fatalf("discount = %d, want capped at subtotal 10000", got)
	}
	if got := rule.DiscountCents(50000); got != 15000 {
		t.Fatalf("discount = %d, want 15000", got)
	}
}

func TestDiscountPercentageRounding(t *testing.T) {
	rule, ok := LookupPromo("WELCOME10")
	if !ok {
		t.Fatalf("expected WELCOME10 to exist")
	}
	// 10% of 55 cents is 5.5, rounded half up to 6.
	if got := rule.DiscountCents(55); got != 6 {
		t.Fatalf("discount = %d, want 6", got)
	}
	if got := rule.DiscountCents(0); got != 0 {
		t.Fatalf("discount on empty subtotal = %d, want 0", got)
	}
}

func TestClampQuantityBounds(t *testing.T) {
	rules := testRules()
	cases := []struct{ in, want int }{
		{-5, 1},
		{0, 1},
		{1, 1},
		{10, 10},
		{11, 10},
		{100, 10},
	}
	for _, tc := range cases {
		if got := ClampQuantity(tc.in, rules); got != tc.want {
			t.Fatalf("ClampQuantity(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
