package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"supplement-storefront/internal/domain"
	orderrepo "supplement-storefront/internal/repository/order"
	"supplement-storefront/internal/service/checkout"
)

// Service is the real order gateway: it turns a checkout draft into a
// persisted order. Placement is idempotent on the draft's idempotency key,
// so a retried submit settles on the first order instead of creating two.
type Service struct {
	repo orderrepo.Repository
	now  func() time.Time
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

const (
	standardDeliveryDays = 5
	expressDeliveryDays  = 2
)

func (s *Service) PlaceOrder(ctx context.Context, draft checkout.OrderDraft) (*domain.Order, error) {
	placedAt := s.now().UTC()

	lines := make([]domain.OrderLine, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID:      l.ProductID,
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
			Size:           l.Size,
			Flavor:         l.Flavor,
			TotalCents:     l.UnitPriceCents * int64(l.Quantity),
		})
	}

	return s.repo.Create(ctx, domain.Order{
		ID:                uuid.NewString(),
		IdempotencyKey:    draft.IdempotencyKey,
		SessionID:         draft.SessionID,
		Currency:          draft.Currency,
		Address:           draft.Address,
		PaymentMethod:     draft.Payment.Method,
		ShippingMethod:    draft.ShippingMethod,
		SubtotalCents:     draft.Totals.SubtotalCents,
		DiscountCents:     draft.Totals.DiscountCents,
		ShippingCents:     draft.Totals.ShippingCents,
		TotalCents:        draft.Totals.TotalCents,
		EstimatedDelivery: placedAt.AddDate(0, 0, deliveryDays(draft.ShippingMethod)),
		PlacedAt:          placedAt,
		Lines:             lines,
	})
}

func deliveryDays(m domain.ShippingMethod) int {
	if m == domain.ShippingExpress {
		return expressDeliveryDays
	}
	return standardDeliveryDays
}
