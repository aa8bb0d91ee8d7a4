package order

import (
	"context"
	"testing"
	"time"

	"supplement-storefront/internal/domain"
	"supplement-storefront/internal/pricing"
	"supplement-storefront/internal/service/checkout"
)

type captureRepo struct {
	created *domain.Order
}

func (r *captureRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	r.created = &o
	return &o, nil
}

func (r *captureRepo) GetByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	if r.created == nil || r.created.IdempotencyKey != key {
		return nil, domain.ErrNotFound
	}
	return r.created, nil
}

func (r *captureRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if r.created == nil || r.created.ID != id {
		return nil, domain.ErrNotFound
	}
	return r.created, nil
}

func testDraft(shipping domain.ShippingMethod) checkout.OrderDraft {
	return checkout.OrderDraft{
		IdempotencyKey: "key-1",
		SessionID:      "sess",
		Currency:       "INR",
		Address:        domain.Address{FullName: "Asha Rao", City: "Bengaluru"},
		Payment:        domain.Payment{Method: domain.PaymentCard},
		ShippingMethod: shipping,
		Totals:         pricing.Totals{SubtotalCents: 479800, ShippingCents: 0, TotalCents: 479800},
		Lines: []domain.CartLine{
			{ProductID: "p1", Name: "Whey Protein", UnitPriceCents: 239900, Quantity: 2},
		},
	}
}

func TestPlaceOrderSnapshotsDraft(t *testing.T) {
	repo := &captureRepo{}
	svc := New(repo)
	placedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return placedAt }

	order, err := svc.PlaceOrder(context.Background(), testDraft(domain.ShippingStandard))
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.ID == "" {
		t.Fatalf("order id not assigned")
	}
	if order.IdempotencyKey != "key-1" {
		t.Fatalf("idempotency key = %q", order.IdempotencyKey)
	}
	if order.TotalCents != 479800 {
		t.Fatalf("total = %d, want 479800", order.TotalCents)
	}
	if len(order.Lines) != 1 || order.Lines[0].TotalCents != 479800 {
		t.Fatalf("line totals not derived: %+v", order.Lines)
	}
	if !order.PlacedAt.Equal(placedAt) {
		t.Fatalf("placed at = %v", order.PlacedAt)
	}
}

func TestEstimatedDeliveryByShippingMethod(t *testing.T) {
	placedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		method domain.ShippingMethod
		want   time.Time
	}{
		{domain.ShippingStandard, placedAt.AddDate(0, 0, 5)},
		{domain.ShippingExpress, placedAt.AddDate(0, 0, 2)},
	}
	for _, tc := range cases {
		repo := &captureRepo{}
		svc := New(repo)
		svc.now = func() time.Time { return placedAt }
		order, err := svc.PlaceOrder(context.Background(), testDraft(tc.method))
		if err != nil {
			t.Fatalf("%s: place order: %v", tc.method, err)
		}
		if !order.EstimatedDelivery.Equal(tc.want) {
			t.Fatalf("%s: estimated delivery = %v, want %v", tc.method, order.EstimatedDelivery, tc.want)
		}
	}
}
