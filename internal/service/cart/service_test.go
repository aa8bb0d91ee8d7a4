package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"supplement-storefront/internal/domain"
	"supplement-storefront/internal/pricing"
	cartrepo "supplement-storefront/internal/repository/cart"
)

// fakeRepo keeps one cart in memory so service calls observe their own
// writes, the way the postgres repo would.
type fakeRepo struct {
	cart    *domain.Cart
	nextID  int
	cleared int
}

func (f *fakeRepo) Create(_ context.Context, in cartrepo.CreateCartInput) (*domain.Cart, error) {
	f.cart = &domain.Cart{
		ID:        "cart-1",
		SessionID: in.SessionID,
		Currency:  in.Currency,
		CreatedAt: time.Now(),
	}
	return f.snapshot(), nil
}

func (f *fakeRepo) GetBySession(_ context.Context, sessionID string) (*domain.Cart, error) {
	if f.cart == nil || f.cart.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	return f.snapshot(), nil
}

func (f *fakeRepo) InsertLine(_ context.Context, in cartrepo.CreateLineInput) (*domain.CartLine, error) {
	f.nextID++
	line := domain.CartLine{
		ID:             fmt.Sprintf("line-%d", f.nextID),
		CartID:         in.CartID,
		ProductID:      in.ProductID,
		Name:           in.Name,
		ImageURL:       in.ImageURL,
		UnitPriceCents: in.UnitPriceCents,
		Quantity:       in.Quantity,
		Size:           in.Size,
		Flavor:         in.Flavor,
		TotalCents:     in.UnitPriceCents * int64(in.Quantity),
	}
	f.cart.Lines = append(f.cart.Lines, line)
	return &line, nil
}

func (f *fakeRepo) UpdateLineQuantity(_ context.Context, cartID, lineID string, quantity int) error {
	for i := range f.cart.Lines {
		if f.cart.Lines[i].ID == lineID {
			f.cart.Lines[i].Quantity = quantity
			f.cart.Lines[i].TotalCents = f.cart.Lines[i].UnitPriceCents * int64(quantity)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) DeleteLine(_ context.Context, cartID, lineID string) error {
	for i := range f.cart.Lines {
		if f.cart.Lines[i].ID == lineID {
			f.cart.Lines = append(f.cart.Lines[:i], f.cart.Lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) SetPromoCode(_ context.Context, cartID string, code *string) error {
	f.cart.PromoCode = code
	return nil
}

func (f *fakeRepo) Clear(_ context.Context, cartID string) error {
	f.cleared++
	f.cart.Lines = nil
	f.cart.PromoCode = nil
	return nil
}

func (f *fakeRepo) snapshot() *domain.Cart {
	c := *f.cart
	c.Lines = append([]domain.CartLine(nil), f.cart.Lines...)
	return &c
}

type fakeProducts struct {
	products map[string]*domain.Product
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func salePrice(v int64) *int64 { return &v }

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	products := &fakeProducts{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Whey Protein", PriceCents: 299900, SalePriceCents: salePrice(239900), ImageURL: "/whey.jpg"},
		"p2": {ID: "p2", Name: "Creatine", PriceCents: 89900},
	}}
	svc := &Service{repo: repo, products: products, rules: pricing.DefaultRules(), currency: "INR"}
	return svc, repo
}

func TestAddItemCreatesCartAndSnapshotsSalePrice(t *testing.T) {
	svc, repo := newTestService()
	view, err := svc.AddItem(context.Background(), "sess", AddItemInput{ProductID: "p1", Size: "1kg", Flavor: "Chocolate", Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Cart.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Cart.Lines))
	}
	line := view.Cart.Lines[0]
	if line.UnitPriceCents != 239900 {
		t.Fatalf("unit price = %d, want sale price 239900", line.UnitPriceCents)
	}
	if line.Name != "Whey Protein" || line.ImageURL != "/whey.jpg" {
		t.Fatalf("display snapshot not copied: %+v", line)
	}
	if repo.cart == nil {
		t.Fatalf("cart was not created")
	}
}

func TestAddItemRejectsQuantityOutOfBounds(t *testing.T) {
	svc, _ := newTestService()
	for _, qty := range []int{0, -1, 11} {
		_, err := svc.AddItem(context.Background(), "sess", AddItemInput{ProductID: "p1", Quantity: qty})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("qty %d: expected invalid input, got %v", qty, err)
		}
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.AddItem(context.Background(), "sess", AddItemInput{ProductID: "missing", Quantity: 1})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	in := AddItemInput{ProductID: "p1", Size: "1kg", Flavor: "Chocolate", Quantity: 1}
	if _, err := svc.AddItem(ctx, "sess", in); err != nil {
		t.Fatalf("first add: %v", err)
	}
	view, err := svc.AddItem(ctx, "sess", in)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(view.Cart.Lines) != 1 {
		t.Fatalf("expected merge into 1 line, got %d", len(view.Cart.Lines))
	}
	if view.Cart.Lines[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", view.Cart.Lines[0].Quantity)
	}
	if view.Totals.SubtotalCents != 479800 {
		t.Fatalf("subtotal = %d, want 479800", view.Totals.SubtotalCents)
	}
}

func TestAddItemDifferentVariantGetsOwnLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p1", Flavor: "Chocolate", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p1", Flavor: "Vanilla", Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(view.Cart.Lines) != 2 {
		t.Fatalf("expected 2 lines for distinct flavors, got %d", len(view.Cart.Lines))
	}
}

func TestAddItemMergeClampsAtMax(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	in := AddItemInput{ProductID: "p2", Quantity: 7}
	if _, err := svc.AddItem(ctx, "sess", in); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.AddItem(ctx, "sess", in)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if view.Cart.Lines[0].Quantity != 10 {
		t.Fatalf("merged quantity = %d, want clamp at 10", view.Cart.Lines[0].Quantity)
	}
}

func TestUpdateQuantityClamps(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	view, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p2", Quantity: 5})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	lineID := view.Cart.Lines[0].ID

	view, err = svc.UpdateQuantity(ctx, "sess", lineID, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Cart.Lines[0].Quantity != 1 {
		t.Fatalf("quantity = %d, want clamp to 1", view.Cart.Lines[0].Quantity)
	}

	view, err = svc.UpdateQuantity(ctx, "sess", lineID, 99)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Cart.Lines[0].Quantity != 10 {
		t.Fatalf("quantity = %d, want clamp to 10", view.Cart.Lines[0].Quantity)
	}
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p2", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := svc.UpdateQuantity(ctx, "sess", "ghost", 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveItemUnknownLineIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p2", Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.RemoveItem(ctx, "sess", "ghost")
	if err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if len(view.Cart.Lines) != 1 {
		t.Fatalf("cart changed by no-op removal: %d lines", len(view.Cart.Lines))
	}
}

func TestRemoveItemDeletesLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	view, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p2", Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err = svc.RemoveItem(ctx, "sess", view.Cart.Lines[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(view.Cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Cart.Lines))
	}
	if view.Totals.SubtotalCents != 0 || view.Totals.TotalCents != 0 {
		t.Fatalf("totals not rederived after removal: %+v", view.Totals)
	}
}

func TestApplyPromoCodeInvalidLeavesCartUnchanged(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p2", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := svc.ApplyPromoCode(ctx, "sess", "BOGUS")
	if !errors.Is(err, domain.ErrInvalidPromoCode) {
		t.Fatalf("expected invalid promo code, got %v", err)
	}
	if repo.cart.PromoCode != nil {
		t.Fatalf("promo stored despite invalid code: %v", *repo.cart.PromoCode)
	}
}

func TestApplyPromoCodeIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p2", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	first, err := svc.ApplyPromoCode(ctx, "sess", "welcome10")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	second, err := svc.ApplyPromoCode(ctx, "sess", "WELCOME10")
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if first.Totals.DiscountCents != second.Totals.DiscountCents {
		t.Fatalf("discount changed on re-apply: %d then %d", first.Totals.DiscountCents, second.Totals.DiscountCents)
	}
	if second.Totals.DiscountCents != 8990 {
		t.Fatalf("discount = %d, want 8990", second.Totals.DiscountCents)
	}
}

func TestClearResetsLinesAndPromo(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "sess", AddItemInput{ProductID: "p2", Quantity: 3}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ApplyPromoCode(ctx, "sess", "WELCOME10"); err != nil {
		t.Fatalf("apply promo: %v", err)
	}
	if err := svc.Clear(ctx, "sess"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	view, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Cart.Lines) != 0 || view.Totals.SubtotalCents != 0 || view.Totals.DiscountCents != 0 {
		t.Fatalf("cart not reset: %+v", view.Totals)
	}
	if repo.cleared != 1 {
		t.Fatalf("clear called %d times, want 1", repo.cleared)
	}
}

func TestClearWithoutCartIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Clear(context.Background(), "sess"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestGetCreatesEmptyCart(t *testing.T) {
	svc, _ := newTestService()
	view, err := svc.Get(context.Background(), "sess")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Cart.Lines) != 0 {
		t.Fatalf("expected empty cart")
	}
	if view.Cart.Currency != "INR" {
		t.Fatalf("currency = %q, want INR", view.Cart.Currency)
	}
}
