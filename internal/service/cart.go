package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/cart"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

// CartKeyPrefix namespaces cart entries in storage.
const CartKeyPrefix = "cart:"

// CartView is what the cart endpoints return: the lines, their total, the
// number of distinct lines and the notices raised by the request.
type CartView struct {
	Lines     []domain.CartLine `json:"lines"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"item_count"`
	Notices   []domain.Notice   `json:"notices"`
}

// CartService opens the session cart from storage for each call and applies
// one mutation to it.
type CartService struct {
	storage  cart.Storage
	products ProductLookup
	events   EventPublisher
	logger   *slog.Logger
}

// NewCartService creates a cart service.
func NewCartService(storage cart.Storage, products ProductLookup, events EventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		storage:  storage,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// CartKey is the storage key of a session's cart.
func CartKey(sessionID string) string {
	return CartKeyPrefix + sessionID
}

func (s *CartService) open(ctx context.Context, sessionID string) (*cart.Store, *cart.Collector, error) {
	if sessionID == "" {
		return nil, nil, apperrors.InvalidInput("session id is required")
	}
	notices := &cart.Collector{}
	store, err := cart.Open(ctx, s.storage, CartKey(sessionID), notices, s.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open cart: %w", err)
	}
	return store, notices, nil
}

// View returns the session's cart.
func (s *CartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	store, notices, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(store, notices), nil
}

// AddItem adds quantity units of a catalog product. Unknown products are not
// found; out-of-stock products are rejected.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID, quantity int) (*CartView, error) {
	product, ok := s.products.ByID(productID)
	if !ok {
		return nil, apperrors.NotFound("product", strconv.Itoa(productID))
	}
	if !product.InStock {
		return nil, apperrors.InvalidInput(product.Name + " is out of stock")
	}

	return s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.AddToCart(ctx, product, quantity)
	})
}

// UpdateItem sets a line's quantity; zero or less removes it.
func (s *CartService) UpdateItem(ctx context.Context, sessionID string, productID, quantity int) (*CartView, error) {
	return s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.UpdateQuantity(ctx, productID, quantity)
	})
}

// RemoveItem deletes a line.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int) (*CartView, error) {
	return s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.RemoveFromCart(ctx, productID)
	})
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	return s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.ClearCart(ctx)
	})
}

func (s *CartService) mutate(ctx context.Context, sessionID string, op func(*cart.Store) error) (*CartView, error) {
	store, notices, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(store); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	view := s.view(store, notices)
	for _, n := range view.Notices {
		cartNoticesTotal.WithLabelValues(string(n.Kind)).Inc()
	}
	if err := s.events.PublishCartUpdated(ctx, sessionID, view.Lines, view.Total); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
	return view, nil
}

func (s *CartService) view(store *cart.Store, notices *cart.Collector) *CartView {
	return &CartView{
		Lines:     store.Lines(),
		Total:     store.Total(),
		ItemCount: store.ItemCount(),
		Notices:   notices.Notices(),
	}
}
