package domain

import "time"

type Product struct {
	ID             string    `json:"id"`
	Key            string    `json:"key"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	PriceCents     int64     `json:"priceCents"`
	SalePriceCents *int64    `json:"salePriceCents,omitempty"`
	Currency       string    `json:"currency"`
	Sizes          []string  `json:"sizes,omitempty"`
	Flavors        []string  `json:"flavors,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Stock          int       `json:"stock"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EffectivePriceCents is the unit price a new cart line snapshots: the sale
// price when one is set and actually lower than the list price.
func (p Product) EffectivePriceCents() int64 {
	if p.SalePriceCents != nil && *p.SalePriceCents < p.PriceCents {
		return *p.SalePriceCents
	}
	return p.PriceCents
}
