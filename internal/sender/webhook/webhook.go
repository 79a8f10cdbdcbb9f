// Package webhook posts messages as JSON to the serverless email function.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/httpclient"
)

// Message types understood by the email function.
const (
	TypeQuotation         = "quotation_request"
	TypeOrderConfirmation = "order_confirmation"
)

// envelope is the body POSTed to the webhook.
type envelope struct {
	Type   string    `json:"type"`
	SentAt time.Time `json:"sent_at"`
	Data   any       `json:"data"`
}

// Sender delivers messages to a single webhook URL.
type Sender struct {
	url    string
	client httpclient.Doer
	logger *slog.Logger
}

// New creates a webhook sender. client is normally a
// *httpclient.CircuitBreakerClient.
func New(url string, client httpclient.Doer, logger *slog.Logger) *Sender {
	return &Sender{url: url, client: client, logger: logger}
}

func (s *Sender) Name() string {
	return "webhook"
}

func (s *Sender) SendQuotation(ctx context.Context, q *domain.QuotationRequest) error {
	return s.post(ctx, TypeQuotation, q.ID, q)
}

func (s *Sender) SendOrderConfirmation(ctx context.Context, o *domain.Order) error {
	return s.post(ctx, TypeOrderConfirmation, o.ID, o)
}

func (s *Sender) post(ctx context.Context, msgType, id string, data any) error {
	body, err := json.Marshal(envelope{Type: msgType, SentAt: time.Now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msgType, err)
	}

	req, err := httpclient.NewJSONRequest(ctx, s.url, body)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("post %s %s: %w", msgType, id, err)
	}
	if !httpclient.IsSuccess(resp.StatusCode) {
		return httpclient.ParseResponseError(resp, "email webhook")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	s.logger.InfoContext(ctx, "webhook delivered",
		slog.String("type", msgType),
		slog.String("id", id),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}
