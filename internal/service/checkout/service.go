package checkout

import (
	"context"
	"fmt"
	"strings"

	"supplement-storefront/internal/domain"
	"supplement-storefront/internal/pricing"
	cartsvc "supplement-storefront/internal/service/cart"
)

// Service drives the three-step checkout wizard: address, payment, review,
// then a terminal complete state. Transitions are guarded; a step can only
// be reached once the prior step's data has passed validation.
type Service struct {
	states    *stateStore
	cart      cartService
	customers customerLookup
	gateway   OrderGateway
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (*cartsvc.View, error)
	Clear(ctx context.Context, sessionID string) error
}

type customerLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// OrderDraft is the snapshot handed to the order gateway on submit.
type OrderDraft struct {
	IdempotencyKey string
	SessionID      string
	Currency       string
	Address        domain.Address
	Payment        domain.Payment
	ShippingMethod domain.ShippingMethod
	Totals         pricing.Totals
	Lines          []domain.CartLine
}

// OrderGateway is the one true external boundary of checkout. The real
// implementation persists orders; tests substitute a fake.
type OrderGateway interface {
	PlaceOrder(ctx context.Context, draft OrderDraft) (*domain.Order, error)
}

func New(cart cartService, customers customerLookup, gateway OrderGateway) *Service {
	return &Service{
		states:    newStateStore(),
		cart:      cart,
		customers: customers,
		gateway:   gateway,
	}
}

// State is the view of a session's checkout returned to handlers.
type State struct {
	Step           domain.CheckoutStep   `json:"step"`
	Address        *domain.Address       `json:"address,omitempty"`
	Payment        *paymentView          `json:"payment,omitempty"`
	ShippingMethod domain.ShippingMethod `json:"shippingMethod"`
	Processing     bool                  `json:"processing"`
	Complete       bool                  `json:"complete"`
	OrderID        string                `json:"orderId,omitempty"`
	Prefill        *domain.Address       `json:"prefill,omitempty"`
}

// paymentView hides card details except for the last four digits.
type paymentView struct {
	Method   domain.PaymentMethod `json:"method"`
	CardLast string               `json:"cardLast4,omitempty"`
}

// Get returns the session's checkout state. For authenticated sessions with
// no address entered yet, the customer profile is offered as a prefill;
// anonymous sessions simply get none.
func (s *Service) Get(ctx context.Context, sessionID, customerID string) (*State, error) {
	var view *State
	err := s.states.withState(sessionID, func(st *checkoutState) error {
		view = snapshot(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if view.Address == nil && customerID != "" {
		if prefill := s.prefill(ctx, customerID); prefill != nil {
			view.Prefill = prefill
		}
	}
	return view, nil
}

// SubmitAddress validates and stores the shipping address, advancing to the
// payment step. Re-submitting from a later step is how "edit address"
// works; the stored payment data survives it. After a completed checkout a
// new draft is started, which requires a fresh non-empty cart.
func (s *Service) SubmitAddress(ctx context.Context, sessionID string, in AddressInput) (*State, error) {
	if err := ValidateAddress(in); err != nil {
		return nil, err
	}
	addr := in.normalize()

	if err := s.restartIfComplete(ctx, sessionID); err != nil {
		return nil, err
	}

	var view *State
	err := s.states.withState(sessionID, func(st *checkoutState) error {
		if st.Processing {
			return domain.ErrCheckoutInProgress
		}
		if st.Complete {
			return domain.ErrCheckoutComplete
		}
		st.Address = &addr
		st.Step = domain.StepPayment
		view = snapshot(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SubmitPayment validates the payment selection and advances to review.
// It is rejected until an address has been stored. Card details are kept
// only when the method is card; switching to wallet or bank drops any
// stale card data rather than carrying it into the stored state.
func (s *Service) SubmitPayment(ctx context.Context, sessionID string, in PaymentInput) (*State, error) {
	if err := ValidatePayment(in); err != nil {
		return nil, err
	}
	payment := in.normalize()
	shipping := domain.ShippingMethod(strings.TrimSpace(in.ShippingMethod))

	var view *State
	err := s.states.withState(sessionID, func(st *checkoutState) error {
		if st.Processing {
			return domain.ErrCheckoutInProgress
		}
		if st.Complete {
			return domain.ErrCheckoutComplete
		}
		if st.Address == nil {
			return fmt.Errorf("%w: address step not completed", domain.ErrInvalidTransition)
		}
		st.Payment = &payment
		st.ShippingMethod = shipping
		st.Step = domain.StepReview
		view = snapshot(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Back navigates to an earlier step without touching stored data. Only
// payment→address and review→payment/address are legal.
func (s *Service) Back(ctx context.Context, sessionID string, to domain.CheckoutStep) (*State, error) {
	var view *State
	err := s.states.withState(sessionID, func(st *checkoutState) error {
		if st.Processing {
			return domain.ErrCheckoutInProgress
		}
		if st.Complete {
			return domain.ErrCheckoutComplete
		}
		switch {
		case st.Step == domain.StepPayment && to == domain.StepAddress:
		case st.Step == domain.StepReview && (to == domain.StepPayment || to == domain.StepAddress):
		default:
			return fmt.Errorf("%w: cannot go back from %s to %s", domain.ErrInvalidTransition, st.Step, to)
		}
		st.Step = to
		view = snapshot(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// PlaceOrder submits the order from the review step. The processing flag is
// flipped under the store lock, so a second submit while one is in flight
// reaches the gateway zero additional times. On gateway failure all entered
// data is preserved and the submit becomes retryable with the same
// idempotency key.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string) (*State, error) {
	var draft OrderDraft
	err := s.states.withState(sessionID, func(st *checkoutState) error {
		if st.Complete {
			return domain.ErrCheckoutComplete
		}
		if st.Processing {
			return domain.ErrCheckoutInProgress
		}
		if st.Step != domain.StepReview || st.Address == nil || st.Payment == nil {
			return fmt.Errorf("%w: order can only be placed from review", domain.ErrInvalidTransition)
		}
		st.Processing = true
		draft = OrderDraft{
			IdempotencyKey: st.IdempotencyKey,
			SessionID:      sessionID,
			Address:        *st.Address,
			Payment:        *st.Payment,
			ShippingMethod: st.ShippingMethod,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.placeDraft(ctx, sessionID, draft)

	var view *State
	stateErr := s.states.withState(sessionID, func(st *checkoutState) error {
		st.Processing = false
		if err == nil {
			st.Complete = true
			st.Step = domain.StepComplete
			st.OrderID = order.ID
		}
		view = snapshot(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if stateErr != nil {
		return nil, stateErr
	}
	return view, nil
}

// placeDraft does the slow work outside the store lock: read the cart,
// call the gateway, clear the cart once the order is durably placed.
func (s *Service) placeDraft(ctx context.Context, sessionID string, draft OrderDraft) (*domain.Order, error) {
	cartView, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cartView.Cart.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	draft.Currency = cartView.Cart.Currency
	draft.Totals = cartView.Totals
	draft.Lines = cartView.Cart.Lines

	order, err := s.gateway.PlaceOrder(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("clear cart after order %s: %w", order.ID, err)
	}
	return order, nil
}

// restartIfComplete replaces a completed checkout with a fresh draft,
// provided the session has started a new, non-empty cart.
func (s *Service) restartIfComplete(ctx context.Context, sessionID string) error {
	var complete bool
	if err := s.states.withState(sessionID, func(st *checkoutState) error {
		complete = st.Complete
		return nil
	}); err != nil {
		return err
	}
	if !complete {
		return nil
	}
	cartView, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(cartView.Cart.Lines) == 0 {
		return domain.ErrEmptyCart
	}
	s.states.replace(sessionID, newDraft())
	return nil
}

func (s *Service) prefill(ctx context.Context, customerID string) *domain.Address {
	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		// Prefill is best-effort; its absence never blocks checkout.
		return nil
	}
	return &domain.Address{
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Street:   c.Street,
		City:     c.City,
		State:    c.State,
		Zip:      c.Zip,
		Country:  c.Country,
	}
}

func snapshot(st *checkoutState) *State {
	out := &State{
		Step:           st.Step,
		ShippingMethod: st.ShippingMethod,
		Processing:     st.Processing,
		Complete:       st.Complete,
		OrderID:        st.OrderID,
	}
	if st.Address != nil {
		addr := *st.Address
		out.Address = &addr
	}
	if st.Payment != nil {
		pv := &paymentView{Method: st.Payment.Method}
		if st.Payment.Card != nil {
			if digits := digitsOnly(st.Payment.Card.Number); len(digits) >= 4 {
				pv.CardLast = digits[len(digits)-4:]
			}
		}
		out.Payment = pv
	}
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
