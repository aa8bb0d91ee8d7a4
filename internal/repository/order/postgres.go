package order

import (
	"context"
	"errors"

	"supplement-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (id, idempotency_key, session_id, currency, full_name, email, phone, street, city, state, zip, country,
                    payment_method, shipping_method, subtotal_cents, discount_cents, shipping_cents, total_cents,
                    estimated_delivery, placed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
ON CONFLICT (idempotency_key) DO NOTHING
`
	tag, err := tx.Exec(ctx, insertOrder,
		o.ID, o.IdempotencyKey, o.SessionID, o.Currency,
		o.Address.FullName, o.Address.Email, o.Address.Phone, o.Address.Street,
		o.Address.City, o.Address.State, o.Address.Zip, o.Address.Country,
		string(o.PaymentMethod), string(o.ShippingMethod),
		o.SubtotalCents, o.DiscountCents, o.ShippingCents, o.TotalCents,
		o.EstimatedDelivery, o.PlacedAt,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// A retry raced an earlier submit with the same key; hand back
		// the order that won.
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			return nil, err
		}
		return r.GetByIdempotencyKey(ctx, o.IdempotencyKey)
	}

	const insertLine = `
INSERT INTO order_lines (order_id, position, product_id, name, unit_price_cents, quantity, size, flavor, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	for i, line := range o.Lines {
		if _, err := tx.Exec(ctx, insertLine,
			o.ID, i, line.ProductID, line.Name, line.UnitPriceCents,
			line.Quantity, line.Size, line.Flavor, line.TotalCents,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, o.ID)
}

func (r *postgresRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	return r.fetchOrder(ctx, `WHERE idempotency_key = $1`, key)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.fetchOrder(ctx, `WHERE id = $1`, id)
}

func (r *postgresRepo) fetchOrder(ctx context.Context, where string, arg any) (*domain.Order, error) {
	q := `
SELECT id::text, idempotency_key, session_id, currency, full_name, email, phone, street, city, state, zip, country,
       payment_method, shipping_method, subtotal_cents, discount_cents, shipping_cents, total_cents,
       estimated_delivery, placed_at
FROM orders
` + where
	var o domain.Order
	var payment, shipping string
	if err := r.pool.QueryRow(ctx, q, arg).Scan(
		&o.ID, &o.IdempotencyKey, &o.SessionID, &o.Currency,
		&o.Address.FullName, &o.Address.Email, &o.Address.Phone, &o.Address.Street,
		&o.Address.City, &o.Address.State, &o.Address.Zip, &o.Address.Country,
		&payment, &shipping,
		&o.SubtotalCents, &o.DiscountCents, &o.ShippingCents, &o.TotalCents,
		&o.EstimatedDelivery, &o.PlacedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.PaymentMethod = domain.PaymentMethod(payment)
	o.ShippingMethod = domain.ShippingMethod(shipping)

	lines, err := r.fetchLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT id::text, order_id::text, product_id::text, name, unit_price_cents, quantity, size, flavor, total_cents
FROM order_lines
WHERE order_id = $1
ORDER BY position
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID, &line.OrderID, &line.ProductID, &line.Name,
			&line.UnitPriceCents, &line.Quantity, &line.Size, &line.Flavor, &line.TotalCents,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
