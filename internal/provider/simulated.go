package provider

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeclinedTestCard is always declined by the simulated provider.
const DeclinedTestCard = "4000000000000002"

// Decline reasons reported by the simulated provider.
const (
	DeclineCardDeclined = "card_declined"
)

// Simulated approves every card except DeclinedTestCard after an optional
// artificial delay.
type Simulated struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewSimulated creates a simulated provider.
func NewSimulated(delay time.Duration, logger *slog.Logger) *Simulated {
	return &Simulated{delay: delay, logger: logger}
}

func (s *Simulated) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	number := strings.ReplaceAll(strings.ReplaceAll(req.Card.Number, " ", ""), "-", "")
	if number == DeclinedTestCard {
		s.logger.InfoContext(ctx, "simulated charge declined",
			slog.String("order_id", req.OrderID),
			slog.Any("card", req.Card),
		)
		return &ChargeResult{DeclineReason: DeclineCardDeclined}, nil
	}

	ref := "sim_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
	s.logger.InfoContext(ctx, "simulated charge approved",
		slog.String("order_id", req.OrderID),
		slog.String("amount", req.Amount.StringFixed(2)),
		slog.String("currency", req.Currency),
		slog.String("reference", ref),
		slog.Any("card", req.Card),
	)
	return &ChargeResult{Approved: true, Reference: ref}, nil
}
