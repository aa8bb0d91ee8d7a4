package domain

import "time"

type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"-"`
	Currency  string     `json:"currency"`
	PromoCode *string    `json:"promoCode,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Lines     []CartLine `json:"lineItems,omitempty"`
}

// CartLine snapshots product display metadata and the effective unit price
// at add time. Size and flavor are informational variant labels; together
// with the product id they form the merge key for repeated adds.
type CartLine struct {
	ID             string    `json:"id"`
	CartID         string    `json:"cartId"`
	ProductID      string    `json:"productId"`
	Name           string    `json:"name"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	Size           string    `json:"size,omitempty"`
	Flavor         string    `json:"flavor,omitempty"`
	TotalCents     int64     `json:"totalCents"`
	CreatedAt      time.Time `json:"createdAt"`
}
