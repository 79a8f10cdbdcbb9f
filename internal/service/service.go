// Package service holds the storefront use cases. Services are stateless;
// per-session state lives in cart storage.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

// EventPublisher publishes storefront domain events. *event.Producer
// satisfies it. Publishing failures never fail a request.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, sessionID string, lines []domain.CartLine, total decimal.Decimal) error
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
	PublishNewsletterSubscribed(ctx context.Context, sub *domain.Subscription) error
	PublishQuotationRequested(ctx context.Context, q *domain.QuotationRequest) error
}

// ProductLookup finds catalog products by id. *catalog.Catalog satisfies it.
type ProductLookup interface {
	ByID(id int) (domain.Product, bool)
}
