package customer

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

const customerColumns = `id::text, email, password_hash, full_name, phone, street, city, state, zip, country, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (email, password_hash, full_name, phone, street, city, state, zip, country)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + customerColumns + `
`
	return r.scanOne(r.pool.QueryRow(ctx, q,
		c.Email, c.PasswordHash, c.FullName, c.Phone,
		c.Street, c.City, c.State, c.Zip, c.Country,
	))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
}

func (r *postgresRepo) scanOne(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(
		&c.ID, &c.Email, &c.PasswordHash, &c.FullName, &c.Phone,
		&c.Street, &c.City, &c.State, &c.Zip, &c.Country, &c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
