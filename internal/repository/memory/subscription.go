package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

// SubscriptionRepository keeps newsletter subscriptions in memory. Emails are
// unique case-insensitively, matching the PostgreSQL index.
type SubscriptionRepository struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]domain.Subscription
}

// NewSubscriptionRepository creates an empty repository.
func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{byMail: make(map[string]domain.Subscription)}
}

func (r *SubscriptionRepository) Create(_ context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(sub.Email)
	if _, ok := r.byMail[key]; ok {
		return apperrors.AlreadyExists("subscription", "email", sub.Email)
	}
	r.nextID++
	sub.ID = r.nextID
	r.byMail[key] = *sub
	return nil
}
