package cart

import (
	"context"

	"supplement-storefront/internal/domain"
)

type CreateCartInput struct {
	SessionID string
	Currency  string
}

type CreateLineInput struct {
	CartID         string
	ProductID      string
	Name           string
	ImageURL       string
	UnitPriceCents int64
	Quantity       int
	Size           string
	Flavor         string
}

// Repository persists carts keyed by session. Lines keep insertion order;
// totals are derived by callers, never read back as truth.
type Repository interface {
	Create(ctx context.Context, in CreateCartInput) (*domain.Cart, error)
	GetBySession(ctx context.Context, sessionID string) (*domain.Cart, error)
	InsertLine(ctx context.Context, in CreateLineInput) (*domain.CartLine, error)
	UpdateLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error
	DeleteLine(ctx context.Context, cartID, lineID string) error
	SetPromoCode(ctx context.Context, cartID string, code *string) error
	Clear(ctx context.Context, cartID string) error
}
