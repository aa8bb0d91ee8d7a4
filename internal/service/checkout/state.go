package checkout

import (
	"sync"

	"github.com/google/uuid"

	"supplement-storefront/internal/domain"
)

// checkoutState is one session's position in the wizard. Address and
// Payment are only ever set after passing validation, so a non-nil pointer
// doubles as the "step passed" guard.
type checkoutState struct {
	Step           domain.CheckoutStep
	Address        *domain.Address
	Payment        *domain.Payment
	ShippingMethod domain.ShippingMethod

	// IdempotencyKey is generated once per draft and reused across submit
	// retries so the order gateway can deduplicate.
	IdempotencyKey string

	Processing bool
	Complete   bool
	OrderID    string
}

func newDraft() *checkoutState {
	return &checkoutState{
		Step:           domain.StepAddress,
		ShippingMethod: domain.ShippingStandard,
		IdempotencyKey: uuid.NewString(),
	}
}

// stateStore holds per-session checkout state. Checkout lives for the
// session only, unlike the cart which is persisted.
type stateStore struct {
	mu     sync.Mutex
	states map[string]*checkoutState
}

func newStateStore() *stateStore {
	return &stateStore{states: make(map[string]*checkoutState)}
}

// withState runs fn while holding the store lock, creating a fresh draft
// for unseen sessions.
func (s *stateStore) withState(sessionID string, fn func(st *checkoutState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[sessionID]
	if !ok {
		st = newDraft()
		s.states[sessionID] = st
	}
	return fn(st)
}

func (s *stateStore) replace(sessionID string, st *checkoutState) {
	s.mu.Lock()
	s.states[sessionID] = st
	s.mu.Unlock()
}
