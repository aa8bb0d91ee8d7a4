package checkout

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"supplement-storefront/internal/domain"
)

// ValidationError carries field-keyed messages. It never advances the
// wizard; the caller re-prompts with the offending fields highlighted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type AddressInput struct {
	FullName string `json:"fullName" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10"`
	Street   string `json:"street" validate:"required,min=5"`
	City     string `json:"city" validate:"required,min=2"`
	State    string `json:"state" validate:"required,min=2"`
	Zip      string `json:"zip" validate:"required,min=4"`
	Country  string `json:"country" validate:"required,min=2"`
}

func (in AddressInput) normalize() domain.Address {
	return domain.Address{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(strings.ToLower(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Street:   strings.TrimSpace(in.Street),
		City:     strings.TrimSpace(in.City),
		State:    strings.TrimSpace(in.State),
		Zip:      strings.TrimSpace(in.Zip),
		Country:  strings.TrimSpace(in.Country),
	}
}

type CardInput struct {
	Number string `json:"number" validate:"required,cardnumber"`
	Holder string `json:"holder" validate:"required,min=3"`
	Expiry string `json:"expiry" validate:"required,cardexpiry"`
	CVC    string `json:"cvc" validate:"required,cardcvc"`
}

type PaymentInput struct {
	Method         string     `json:"method" validate:"required,oneof=card wallet bank"`
	ShippingMethod string     `json:"shippingMethod" validate:"required,oneof=standard express"`
	Card           *CardInput `json:"card,omitempty"`
}

// normalize builds the stored payment value. Card details survive only for
// the card method.
func (in PaymentInput) normalize() domain.Payment {
	p := domain.Payment{Method: domain.PaymentMethod(strings.TrimSpace(in.Method))}
	if p.Method == domain.PaymentCard && in.Card != nil {
		p.Card = &domain.CardDetails{
			Number: strings.TrimSpace(in.Card.Number),
			Holder: strings.TrimSpace(in.Card.Holder),
			Expiry: strings.TrimSpace(in.Card.Expiry),
			CVC:    strings.TrimSpace(in.Card.CVC),
		}
	}
	return p
}

var (
	cardNumberRe = regexp.MustCompile(`^[0-9 \-]+$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cardCVCRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Card number: digits with optional spaces/hyphens, 16-19 digits total.
	v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if !cardNumberRe.MatchString(raw) {
			return false
		}
		n := len(digitsOnly(raw))
		return n >= 16 && n <= 19
	})
	v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return cardExpiryRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("cardcvc", func(fl validator.FieldLevel) bool {
		return cardCVCRe.MatchString(fl.Field().String())
	})
	return v
}

// ValidateAddress checks the address step's fields and reports every
// failing field at once.
func ValidateAddress(in AddressInput) error {
	return collect(validate.Struct(trimmedAddress(in)), "")
}

// ValidatePayment checks the payment selection. Card sub-fields are
// validated only when the method is card; wallet and bank need nothing.
func ValidatePayment(in PaymentInput) error {
	if err := collect(validate.StructExcept(in, "Card"), ""); err != nil {
		return err
	}
	if strings.TrimSpace(in.Method) != string(domain.PaymentCard) {
		return nil
	}
	if in.Card == nil {
		return &ValidationError{Fields: map[string]string{"card": "card details required"}}
	}
	return collect(validate.Struct(*in.Card), "card.")
}

func trimmedAddress(in AddressInput) AddressInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Street = strings.TrimSpace(in.Street)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Zip = strings.TrimSpace(in.Zip)
	in.Country = strings.TrimSpace(in.Country)
	return in
}

// collect converts validator errors into a field-keyed ValidationError.
func collect(err error, prefix string) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[prefix+fe.Field()] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "cardnumber":
		return "must be 16-19 digits (spaces and hyphens allowed)"
	case "cardexpiry":
		return "must match MM/YY"
	case "cardcvc":
		return "must be 3 or 4 digits"
	}
	return "invalid value"
}
