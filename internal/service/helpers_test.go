package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/catalog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/chat"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/provider"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository/memory"
)

// --- Mocks ---

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishCartUpdated(ctx context.Context, sessionID string, lines []domain.CartLine, total decimal.Decimal) error {
	return m.Called(ctx, sessionID, lines, total).Error(0)
}

func (m *mockEvents) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockEvents) PublishNewsletterSubscribed(ctx context.Context, sub *domain.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockEvents) PublishQuotationRequested(ctx context.Context, q *domain.QuotationRequest) error {
	return m.Called(ctx, q).Error(0)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Charge(ctx context.Context, req provider.ChargeRequest) (*provider.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.ChargeResult), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Name() string { return "mock" }

func (m *mockSender) SendQuotation(ctx context.Context, q *domain.QuotationRequest) error {
	return m.Called(ctx, q).Error(0)
}

func (m *mockSender) SendOrderConfirmation(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

type mockChat struct {
	mock.Mock
}

func (m *mockChat) Reply(ctx context.Context, message string) (string, chat.Outcome) {
	args := m.Called(ctx, message)
	return args.String(0), args.Get(1).(chat.Outcome)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	roseProduct = domain.Product{
		ID: 2, Name: "Sweet Avalanche Rose", Price: price("49.99"),
		Category: domain.CategoryRoses, InStock: true,
	}
	avocadoProduct = domain.Product{
		ID: 10, Name: "Premium Avocado Box", Price: price("79.99"),
		Category: domain.CategoryFruits, InStock: true,
	}
	gypsoProduct = domain.Product{
		ID: 7, Name: "Gypsophila", Price: price("12.50"),
		Category: domain.CategoryFillers, InStock: false,
	}
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Product{roseProduct, avocadoProduct, gypsoProduct})
}

// newTestCartService returns a cart service over fresh in-memory storage
// whose events mock accepts any cart.updated publish.
func newTestCartService() (*CartService, *mockEvents) {
	events := &mockEvents{}
	events.On("PublishCartUpdated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := NewCartService(memory.NewCartStorage(time.Hour), testCatalog(), events, newTestLogger())
	return svc, events
}
