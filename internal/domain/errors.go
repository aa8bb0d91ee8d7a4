package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput flags caller mistakes that map to a 400 at the edge.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPromoCode is returned when a promo code is not in the table.
	ErrInvalidPromoCode = errors.New("invalid promo code")
	// ErrEmptyCart is returned when an order is placed over an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition is returned when a checkout step is requested
	// before its preconditions have been met.
	ErrInvalidTransition = errors.New("invalid checkout transition")
	// ErrCheckoutInProgress is returned when a submit arrives while a
	// previous submit is still being processed.
	ErrCheckoutInProgress = errors.New("checkout already processing")
	// ErrCheckoutComplete is returned when a submit arrives after the
	// checkout has already produced an order.
	ErrCheckoutComplete = errors.New("checkout already complete")
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
