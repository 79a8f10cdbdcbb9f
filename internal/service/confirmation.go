package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/event"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/sender"
	pkgkafka "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/kafka"
)

// ConfirmationHandler sends an order confirmation for each order.placed event.
type ConfirmationHandler struct {
	sender sender.Sender
	logger *slog.Logger
}

// NewConfirmationHandler creates the order-confirmation event handler.
func NewConfirmationHandler(snd sender.Sender, logger *slog.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{sender: snd, logger: logger}
}

// Handle processes one event. Other event types are ignored. A send failure
// is returned so the consumer retries and eventually dead-letters it.
func (h *ConfirmationHandler) Handle(ctx context.Context, e *pkgkafka.Event) error {
	switch e.EventType {
	case event.TopicOrderPlaced:
		return h.handleOrderPlaced(ctx, e)
	default:
		h.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", e.EventType),
			slog.String("event_id", e.EventID),
		)
		return nil
	}
}

func (h *ConfirmationHandler) handleOrderPlaced(ctx context.Context, e *pkgkafka.Event) error {
	var order domain.Order
	if err := e.UnmarshalData(&order); err != nil {
		confirmationsSentTotal.WithLabelValues("malformed").Inc()
		return fmt.Errorf("decode order.placed payload: %w", err)
	}
	if order.Shipping.Email == "" {
		confirmationsSentTotal.WithLabelValues("skipped").Inc()
		h.logger.WarnContext(ctx, "order has no email, skipping confirmation",
			slog.String("order_id", order.ID),
		)
		return nil
	}

	if err := h.sender.SendOrderConfirmation(ctx, &order); err != nil {
		confirmationsSentTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("send confirmation for order %s: %w", order.ID, err)
	}
	confirmationsSentTotal.WithLabelValues("sent").Inc()
	h.logger.InfoContext(ctx, "order confirmation sent",
		slog.String("order_id", order.ID),
		slog.String("sender", h.sender.Name()),
	)
	return nil
}
