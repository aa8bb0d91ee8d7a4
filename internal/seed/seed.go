package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Key            string
	SKU            string
	Name           string
	Description    string
	PriceCents     int64
	SalePriceCents *int64
	Sizes          []string
	Flavors        []string
	ImageURL       string
	Stock          int
}

func cents(v int64) *int64 { return &v }

// Apply inserts the demo supplement catalog. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Key:            "whey-protein-gold",
			SKU:            "SUPP-WHEY-GOLD",
			Name:           "Gold Standard Whey Protein",
			Description:    "24g protein per serving, fast-absorbing isolate blend",
			PriceCents:     299900,
			SalePriceCents: cents(239900),
			Sizes:          []string{"1kg", "2kg", "5kg"},
			Flavors:        []string{"Chocolate", "Vanilla", "Strawberry"},
			ImageURL:       "/images/whey-gold.jpg",
			Stock:          120,
		},
		{
			Key:         "creatine-monohydrate",
			SKU:         "SUPP-CREATINE-MONO",
			Name:        "Micronized Creatine Monohydrate",
			Description: "5g pure creatine per serving, unflavored",
			PriceCents:  89900,
			Sizes:       []string{"250g", "500g"},
			Flavors:     []string{"Unflavored"},
			ImageURL:    "/images/creatine.jpg",
			Stock:       200,
		},
		{
			Key:            "pre-workout-surge",
			SKU:            "SUPP-PREWORKOUT-SURGE",
			Name:           "Surge Pre-Workout",
			Description:    "Caffeine, beta-alanine and citrulline stack",
			PriceCents:     149900,
			SalePriceCents: cents(129900),
			Sizes:          []string{"300g"},
			Flavors:        []string{"Blue Raspberry", "Fruit Punch", "Mango"},
			ImageURL:       "/images/pre-workout.jpg",
			Stock:          80,
		},
		{
			Key:         "omega3-fish-oil",
			SKU:         "SUPP-OMEGA3",
			Name:        "Omega-3 Fish Oil",
			Description: "1000mg softgels, 180 count",
			PriceCents:  69900,
			Sizes:       []string{"90 caps", "180 caps"},
			ImageURL:    "/images/omega3.jpg",
			Stock:       150,
		},
		{
			Key:         "multivitamin-daily",
			SKU:         "SUPP-MULTI-DAILY",
			Name:        "Daily Multivitamin",
			Description: "Complete micronutrient coverage for active adults",
			PriceCents:  59900,
			Sizes:       []string{"60 tabs", "120 tabs"},
			ImageURL:    "/images/multivitamin.jpg",
			Stock:       300,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (key, sku, name, description, price_cents, sale_price_cents, currency, sizes, flavors, image_url, stock)
VALUES ($1, $2, $3, $4, $5, $6, 'INR', $7, $8, $9, $10)
ON CONFLICT (key) DO UPDATE SET
    sku = EXCLUDED.sku,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    sale_price_cents = EXCLUDED.sale_price_cents,
    sizes = EXCLUDED.sizes,
    flavors = EXCLUDED.flavors,
    image_url = EXCLUDED.image_url,
    stock = EXCLUDED.stock
`
	_, err := pool.Exec(ctx, q,
		p.Key, p.SKU, p.Name, p.Description, p.PriceCents, p.SalePriceCents,
		p.Sizes, p.Flavors, p.ImageURL, p.Stock,
	)
	return err
}
