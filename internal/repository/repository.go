// Package repository declares the persistence ports of the storefront.
//
// Cart storage follows cart.Storage and processed-event tracking follows
// kafka.IdempotencyStore. redis/ implements both, memory/ implements cart
// storage and subscriptions for local runs, postgres/ implements
// SubscriptionRepository.
package repository

import (
	"context"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

// SubscriptionRepository stores newsletter subscriptions.
type SubscriptionRepository interface {
	// Create inserts sub and fills in its ID. An email that is already
	// subscribed yields an error matching errors.ErrAlreadyExists.
	Create(ctx context.Context, sub *domain.Subscription) error
}
