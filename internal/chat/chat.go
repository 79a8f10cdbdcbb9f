// Package chat talks to the generative-language API behind the storefront's
// chat widget.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/httpclient"
)

// Persona is prepended to every visitor message.
const Persona = `You are the friendly virtual assistant of Kranian Farms, a family-run farm in Naivasha, Kenya that grows premium roses, spray roses, summer flowers and fillers, and supplies fresh vegetables and fruits.
Answer questions about our products, growing practices, wholesale ordering (minimum 300 stems or units per product, maximum 30000), delivery and flower care.
Keep answers short, warm and practical. If you do not know something, suggest contacting the farm team through the quotation form.`

// Replies used when the API gives nothing usable.
const (
	FallbackReply = "I'm sorry, I couldn't come up with an answer to that. Could you try rephrasing your question?"
	ErrorReply    = "I'm having trouble connecting right now. Please try again in a moment or reach us through the contact form."
)

// Outcome classifies how a reply was produced.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeEmpty Outcome = "empty"
	OutcomeError Outcome = "error"
)

// Config locates the API.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Client sends visitor messages to the API.
type Client struct {
	endpoint string
	http     httpclient.Doer
	logger   *slog.Logger
}

// New creates a chat client. doer is normally a *httpclient.CircuitBreakerClient
// with retries disabled.
func New(cfg Config, doer httpclient.Doer, logger *slog.Logger) *Client {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(cfg.BaseURL, "/"),
		url.PathEscape(cfg.Model),
		url.QueryEscape(cfg.APIKey),
	)
	return &Client{endpoint: endpoint, http: doer, logger: logger}
}

// Prompt builds the text sent for message.
func Prompt(message string) string {
	return Persona + "\n\nUser: " + message
}

// Reply returns the model's answer to message. It never fails: problems are
// logged and answered with ErrorReply, and a response without text gets
// FallbackReply.
func (c *Client) Reply(ctx context.Context, message string) (string, Outcome) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: Prompt(message)}}}},
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "marshal chat request", slog.String("error", err.Error()))
		return ErrorReply, OutcomeError
	}

	req, err := httpclient.NewJSONRequest(ctx, c.endpoint, body)
	if err != nil {
		// The error text would include the URL and with it the key.
		c.logger.ErrorContext(ctx, "build chat request failed")
		return ErrorReply, OutcomeError
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.logger.WarnContext(ctx, "chat request failed", slog.String("error", redact(err)))
		return ErrorReply, OutcomeError
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		c.logger.WarnContext(ctx, "chat API returned non-200", slog.Int("status", resp.StatusCode))
		return ErrorReply, OutcomeError
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.WarnContext(ctx, "decode chat response", slog.String("error", err.Error()))
		return ErrorReply, OutcomeError
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return FallbackReply, OutcomeEmpty
	}
	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return FallbackReply, OutcomeEmpty
	}
	return text, OutcomeOK
}

// redact drops the request URL from transport errors so the API key stays
// out of the logs.
func redact(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Op + ": " + uerr.Err.Error()
	}
	return err.Error()
}
