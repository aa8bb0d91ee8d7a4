package cart

import (
	"context"
	"errors"

	"supplement-storefront/internal/db"
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

func (r *postgresRepo) Create(ctx context.Context, in CreateCartInput) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (session_id, currency)
VALUES ($1, $2)
RETURNING id::text, session_id, currency, promo_code, created_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, in.SessionID, in.Currency).Scan(
		&cart.ID,
		&cart.SessionID,
		&cart.Currency,
		&cart.PromoCode,
		&cart.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetBySession(ctx context.Context, sessionID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, session_id, currency, promo_code, created_at
FROM carts
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT 1
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, sessionID).Scan(
		&cart.ID,
		&cart.SessionID,
		&cart.Currency,
		&cart.PromoCode,
		&cart.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.fetchLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return &cart, nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	const q = `
SELECT id::text, cart_id::text, product_id::text, name, image_url, unit_price_cents, quantity, size, flavor, total_cents, created_at
FROM cart_lines
WHERE cart_id = $1
ORDER BY created_at, id
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.CartID,
			&line.ProductID,
			&line.Name,
			&line.ImageURL,
			&line.UnitPriceCents,
			&line.Quantity,
			&line.Size,
			&line.Flavor,
			&line.TotalCents,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) InsertLine(ctx context.Context, in CreateLineInput) (*domain.CartLine, error) {
	const q = `
INSERT INTO cart_lines (cart_id, product_id, name, image_url, unit_price_cents, quantity, size, flavor, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id::text, cart_id::text, product_id::text, name, image_url, unit_price_cents, quantity, size, flavor, total_cents, created_at
`
	var line domain.CartLine
	if err := r.pool.QueryRow(ctx, q,
		in.CartID,
		in.ProductID,
		in.Name,
		in.ImageURL,
		in.UnitPriceCents,
		in.Quantity,
		in.Size,
		in.Flavor,
		in.UnitPriceCents*int64(in.Quantity),
	).Scan(
		&line.ID,
		&line.CartID,
		&line.ProductID,
		&line.Name,
		&line.ImageURL,
		&line.UnitPriceCents,
		&line.Quantity,
		&line.Size,
		&line.Flavor,
		&line.TotalCents,
		&line.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) UpdateLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error {
	const q = `
UPDATE cart_lines
SET quantity = $1,
    total_cents = unit_price_cents * $1
WHERE cart_id = $2 AND id = $3
`
	tag, err := r.pool.Exec(ctx, q, quantity, cartID, lineID)
	if err != nil {
		// A non-uuid line id is just an unknown line.
		if db.IsInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteLine(ctx context.Context, cartID, lineID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1 AND id = $2`, cartID, lineID)
	if err != nil {
		if db.IsInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetPromoCode(ctx context.Context, cartID string, code *string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE carts SET promo_code = $1 WHERE id = $2`, code, cartID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE carts SET promo_code = NULL WHERE id = $1`, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
