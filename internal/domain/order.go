package domain

import "time"

type Order struct {
	ID                string         `json:"id"`
	IdempotencyKey    string         `json:"-"`
	SessionID         string         `json:"-"`
	Currency          string         `json:"currency"`
	Address           Address        `json:"shippingAddress"`
	PaymentMethod     PaymentMethod  `json:"paymentMethod"`
	ShippingMethod    ShippingMethod `json:"shippingMethod"`
	SubtotalCents     int64          `json:"subtotalCents"`
	DiscountCents     int64          `json:"discountCents"`
	ShippingCents     int64          `json:"shippingCents"`
	TotalCents        int64          `json:"totalCents"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	PlacedAt          time.Time      `json:"placedAt"`
	Lines             []OrderLine    `json:"lineItems,omitempty"`
}

type OrderLine struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	Size           string `json:"size,omitempty"`
	Flavor         string `json:"flavor,omitempty"`
	TotalCents     int64  `json:"totalCents"`
}
