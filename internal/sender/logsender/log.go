// Package logsender is the development Sender: it logs and always succeeds.
package logsender

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

// LogSender writes a summary of each message to the logger.
type LogSender struct {
	delay  time.Duration
	logger *slog.Logger
}

// New creates a log sender that waits delay before logging, to mimic a real
// send.
func New(delay time.Duration, logger *slog.Logger) *LogSender {
	return &LogSender{delay: delay, logger: logger}
}

func (s *LogSender) Name() string {
	return "log"
}

func (s *LogSender) SendQuotation(ctx context.Context, q *domain.QuotationRequest) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "log sender: quotation request sent",
		slog.String("quotation_id", q.ID),
		slog.String("contact_email", q.Contact.Email),
		slog.String("company", q.Contact.Company),
		slog.Int("items", len(q.Items)),
		slog.Bool("from_cart", q.FromCart),
	)
	return nil
}

func (s *LogSender) SendOrderConfirmation(ctx context.Context, o *domain.Order) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "log sender: order confirmation sent",
		slog.String("order_id", o.ID),
		slog.String("email", o.Shipping.Email),
		slog.String("subtotal", o.Subtotal.StringFixed(2)),
		slog.Int("lines", len(o.Lines)),
	)
	return nil
}

func (s *LogSender) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
