// Package sender delivers quotation requests and order confirmations to the
// farm's email collaborator.
package sender

import (
	"context"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

// Sender hands a message to an outbound channel.
type Sender interface {
	Name() string
	SendQuotation(ctx context.Context, q *domain.QuotationRequest) error
	SendOrderConfirmation(ctx context.Context, o *domain.Order) error
}
