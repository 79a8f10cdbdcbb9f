package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/provider"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

// Currency of every catalog price.
const Currency = "USD"

// CheckoutInput is the checkout form.
type CheckoutInput struct {
	Shipping domain.ShippingDetails
	Card     provider.Card
}

// CheckoutService turns a session cart into a paid order.
type CheckoutService struct {
	carts    *CartService
	payments provider.Provider
	events   EventPublisher
	logger   *slog.Logger
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(carts *CartService, payments provider.Provider, events EventPublisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		payments: payments,
		events:   events,
		logger:   logger,
	}
}

// PlaceOrder charges the cart total and, once the payment is approved, clears
// the cart. A declined payment leaves the cart untouched.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, in CheckoutInput) (*domain.Order, error) {
	cartView, err := s.carts.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cartView.Lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	orderID := uuid.NewString()
	result, err := s.payments.Charge(ctx, provider.ChargeRequest{
		OrderID:  orderID,
		Amount:   cartView.Total,
		Currency: Currency,
		Card:     in.Card,
		Email:    in.Shipping.Email,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "payment provider call failed",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.ServiceUnavailable("payment provider is unavailable, please try again")
	}
	if !result.Approved {
		paymentsDeclinedTotal.WithLabelValues(result.DeclineReason).Inc()
		s.logger.InfoContext(ctx, "payment declined",
			slog.String("order_id", orderID),
			slog.String("reason", result.DeclineReason),
		)
		return nil, apperrors.PaymentFailed(fmt.Sprintf("payment was declined (%s)", result.DeclineReason))
	}

	order := &domain.Order{
		ID:               orderID,
		SessionID:        sessionID,
		Lines:            cartView.Lines,
		Subtotal:         cartView.Total,
		Currency:         Currency,
		Shipping:         in.Shipping,
		PaymentReference: result.Reference,
		CardLast4:        in.Card.Last4(),
		Status:           domain.OrderStatusPaid,
		PlacedAt:         time.Now().UTC(),
	}

	// The payment has been taken; a failed clear must not fail the order.
	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after payment",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.events.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	ordersPlacedTotal.Inc()
	orderValueTotal.Add(order.Subtotal.InexactFloat64())
	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("subtotal", order.Subtotal.StringFixed(2)),
		slog.Int("lines", len(order.Lines)),
	)
	return order, nil
}
