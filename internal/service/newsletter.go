package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

// ErrAlreadySubscribed is returned for an email that is already on the list.
var ErrAlreadySubscribed = &apperrors.AppError{
	Code:    "ALREADY_SUBSCRIBED",
	Message: "this email is already subscribed",
	Status:  http.StatusConflict,
	Err:     apperrors.ErrAlreadyExists,
}

// NewsletterService manages newsletter signups.
type NewsletterService struct {
	repo   repository.SubscriptionRepository
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

// NewNewsletterService creates a newsletter service.
func NewNewsletterService(repo repository.SubscriptionRepository, events EventPublisher, logger *slog.Logger) *NewsletterService {
	return &NewsletterService{
		repo:   repo,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Subscribe adds email to the newsletter.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*domain.Subscription, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	sub := &domain.Subscription{
		Email:        email,
		SubscribedAt: s.now().UTC(),
		Status:       domain.SubscriptionStatusActive,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			subscriptionsTotal.WithLabelValues("duplicate").Inc()
			return nil, ErrAlreadySubscribed
		}
		subscriptionsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.Internal(err)
	}
	subscriptionsTotal.WithLabelValues("subscribed").Inc()

	if err := s.events.PublishNewsletterSubscribed(ctx, sub); err != nil {
		s.logger.WarnContext(ctx, "failed to publish newsletter.subscribed event",
			slog.String("error", err.Error()),
		)
	}
	return sub, nil
}
