// Package provider is the boundary to the payment collaborator. The storefront
// ships with a simulated provider; a real gateway plugs in behind Provider.
package provider

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Card is the payment card entered at checkout. It is held in memory for the
// duration of a charge and never persisted; its log form shows only the last
// four digits.
type Card struct {
	Number string
	Expiry string
	CVC    string
	Holder string
}

// Last4 returns the final four digits of the card number.
func (c Card) Last4() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, c.Number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// LogValue keeps the number and CVC out of logs.
func (c Card) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("last4", c.Last4()),
		slog.String("holder", c.Holder),
	)
}

// ChargeRequest asks the provider to take a payment.
type ChargeRequest struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Card     Card
	Email    string
}

// ChargeResult is the provider's answer. A decline is a result, not an error.
type ChargeResult struct {
	Approved      bool
	Reference     string
	DeclineReason string
}

// Provider charges payment cards. Errors mean the provider could not be
// reached or failed; declines come back in ChargeResult.
type Provider interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
