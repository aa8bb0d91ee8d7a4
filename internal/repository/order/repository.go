package order

import (
	"context"

	"supplement-storefront/internal/domain"
)

// Repository persists placed orders. Create is idempotent on the draft's
// idempotency key: a retried submit returns the already-placed order.
type Repository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
