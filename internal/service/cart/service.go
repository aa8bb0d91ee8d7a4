package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"supplement-storefront/internal/domain"
	"supplement-storefront/internal/pricing"
	cartrepo "supplement-storefront/internal/repository/cart"
)

// Service owns the authoritative cart state for each session. Repeated adds
// of the same product+size+flavor merge into one line; totals are derived
// on every read and never cached.
type Service struct {
	repo     cartRepo
	products productRepo
	rules    pricing.Rules
	currency string
}

type cartRepo interface {
	Create(ctx context.Context, in cartrepo.CreateCartInput) (*domain.Cart, error)
	GetBySession(ctx context.Context, sessionID string) (*domain.Cart, error)
	InsertLine(ctx context.Context, in cartrepo.CreateLineInput) (*domain.CartLine, error)
	UpdateLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error
	DeleteLine(ctx context.Context, cartID, lineID string) error
	SetPromoCode(ctx context.Context, cartID string, code *string) error
	Clear(ctx context.Context, cartID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productRepo, rules pricing.Rules) *Service {
	return &Service{
		repo:     repo,
		products: products,
		rules:    rules,
		currency: "INR",
	}
}

// View pairs a cart with totals derived from its current lines and promo.
type View struct {
	Cart   domain.Cart    `json:"cart"`
	Totals pricing.Totals `json:"totals"`
}

type AddItemInput struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Flavor    string `json:"flavor,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Get returns the session's cart, creating an empty one on first use.
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	cart, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// AddItem appends or merges a line for the resolved product. The requested
// quantity must already be within bounds; a merge that would exceed the
// per-line maximum is clamped to it.
func (s *Service) AddItem(ctx context.Context, sessionID string, in AddItemInput) (*View, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: productId required", domain.ErrInvalidInput)
	}
	if in.Quantity < 1 || in.Quantity > s.rules.MaxLineQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", domain.ErrInvalidInput, s.rules.MaxLineQuantity)
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("product %w", domain.ErrNotFound)
		}
		return nil, err
	}

	cart, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if existing := findLine(cart.Lines, product.ID, in.Size, in.Flavor); existing != nil {
		merged := pricing.ClampQuantity(existing.Quantity+in.Quantity, s.rules)
		if err := s.repo.UpdateLineQuantity(ctx, cart.ID, existing.ID, merged); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.repo.InsertLine(ctx, cartrepo.CreateLineInput{
			CartID:         cart.ID,
			ProductID:      product.ID,
			Name:           product.Name,
			ImageURL:       product.ImageURL,
			UnitPriceCents: product.EffectivePriceCents(),
			Quantity:       in.Quantity,
			Size:           in.Size,
			Flavor:         in.Flavor,
		}); err != nil {
			return nil, err
		}
	}

	return s.reload(ctx, sessionID)
}

// UpdateQuantity sets a line's quantity, clamped to [1, max]. An unknown
// line id surfaces domain.ErrNotFound.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*View, error) {
	if strings.TrimSpace(lineID) == "" {
		return nil, fmt.Errorf("%w: lineId required", domain.ErrInvalidInput)
	}
	cart, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	clamped := pricing.ClampQuantity(quantity, s.rules)
	if err := s.repo.UpdateLineQuantity(ctx, cart.ID, lineID, clamped); err != nil {
		return nil, err
	}
	return s.reload(ctx, sessionID)
}

// RemoveItem deletes a line. Removing an id that is already gone is a
// silent no-op so stale UI actions cannot fail the whole cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, lineID string) (*View, error) {
	cart, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteLine(ctx, cart.ID, lineID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.reload(ctx, sessionID)
}

// ApplyPromoCode validates the code against the promo table. Invalid codes
// leave the cart untouched; reapplying a valid code does not stack.
func (s *Service) ApplyPromoCode(ctx context.Context, sessionID, code string) (*View, error) {
	rule, ok := pricing.LookupPromo(code)
	if !ok {
		return nil, domain.ErrInvalidPromoCode
	}
	cart, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	normalized := rule.Code
	if err := s.repo.SetPromoCode(ctx, cart.ID, &normalized); err != nil {
		return nil, err
	}
	return s.reload(ctx, sessionID)
}

// Clear empties the cart and resets the promo. Checkout calls this exactly
// once after a successful order.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	cart, err := s.repo.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}

func (s *Service) getOrCreate(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.GetBySession(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, cartrepo.CreateCartInput{SessionID: sessionID, Currency: s.currency})
}

func (s *Service) reload(ctx context.Context, sessionID string) (*View, error) {
	cart, err := s.repo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

func (s *Service) view(cart *domain.Cart) *View {
	return &View{
		Cart:   *cart,
		Totals: pricing.Compute(cart.Lines, cart.PromoCode, s.rules),
	}
}

func findLine(lines []domain.CartLine, productID, size, flavor string) *domain.CartLine {
	for i := range lines {
		line := &lines[i]
		if line.ProductID == productID && line.Size == size && line.Flavor == flavor {
			return line
		}
	}
	return nil
}
