package domain

// CheckoutStep is the position of a session inside the checkout wizard.
type CheckoutStep string

const (
	StepAddress  CheckoutStep = "address"
	StepPayment  CheckoutStep = "payment"
	StepReview   CheckoutStep = "review"
	StepComplete CheckoutStep = "complete"
)

func (s CheckoutStep) String() string { return string(s) }

// PaymentMethod enumerates the supported payment options.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
	PaymentBank   PaymentMethod = "bank"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentWallet, PaymentBank:
		return true
	}
	return false
}

// ShippingMethod selects the delivery speed quoted at review.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

func (m ShippingMethod) IsValid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// Address is the shipping address collected in the first checkout step.
type Address struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// CardDetails is present only when the payment method is card.
type CardDetails struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// Payment is the validated payment selection stored after the second step.
type Payment struct {
	Method PaymentMethod `json:"method"`
	Card   *CardDetails  `json:"card,omitempty"`
}
