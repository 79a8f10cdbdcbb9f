// Package cart implements the session shopping cart: an ordered list of
// product lines that is rehydrated from storage when opened and written back
// after every mutation.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

// Store is one session's cart. Methods are safe for concurrent use, but two
// Stores opened on the same key overwrite each other's writes.
type Store struct {
	mu       sync.Mutex
	key      string
	lines    []domain.CartLine
	storage  Storage
	notifier Notifier
	logger   *slog.Logger
}

// Open loads the cart saved under key. Unreadable data is logged and
// replaced by an empty cart. A non-empty cart is written straight back, which
// also upgrades older payload layouts. Only a storage failure is returned.
func Open(ctx context.Context, storage Storage, key string, notifier Notifier, logger *slog.Logger) (*Store, error) {
	if notifier == nil {
		notifier = NotifierFunc(func(domain.Notice) {})
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		key:      key,
		lines:    []domain.CartLine{},
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}

	raw, found, err := storage.GetItem(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read cart %s: %w", key, err)
	}
	if !found {
		return s, nil
	}

	lines, version, err := Decode(raw)
	if err != nil {
		logger.WarnContext(ctx, "discarding unreadable saved cart",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return s, nil
	}
	if len(lines) > 0 {
		if version != PayloadVersion {
			logger.InfoContext(ctx, "migrating saved cart",
				slog.String("key", key),
				slog.Int("from_version", version),
			)
		}
		if err := s.commit(ctx, lines); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddToCart adds quantity to the product's line, appending a new line when
// the product is not in the cart yet.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notice := domain.Notice{
		Kind:    domain.NoticeAdded,
		Title:   "Added to cart",
		Message: product.Name + " has been added to your cart.",
	}
	next := s.snapshot()
	if i := s.indexOf(product.ID); i >= 0 {
		next[i].Quantity += quantity
		notice = domain.Notice{
			Kind:    domain.NoticeUpdated,
			Title:   "Cart updated",
			Message: product.Name + " quantity has been updated.",
		}
	} else {
		next = append(next, domain.CartLine{Product: product, Quantity: quantity})
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.notifier.Notify(notice)
	return nil
}

// RemoveFromCart deletes the product's line. Removing an absent product is a
// no-op and emits no notice.
func (s *Store) RemoveFromCart(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, productID)
}

func (s *Store) remove(ctx context.Context, productID int) error {
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	removed := s.lines[i].Product
	next := append(s.lines[:i:i], s.lines[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.notifier.Notify(domain.Notice{
		Kind:    domain.NoticeRemoved,
		Title:   "Removed from cart",
		Message: removed.Name + " has been removed from your cart.",
	})
	return nil
}

// UpdateQuantity sets the product's quantity in place. A quantity of zero or
// less removes the line. Absent products are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.remove(ctx, productID)
	}
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	next := s.snapshot()
	next[i].Quantity = quantity
	return s.commit(ctx, next)
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, []domain.CartLine{}); err != nil {
		return err
	}
	s.notifier.Notify(domain.Notice{
		Kind:    domain.NoticeCleared,
		Title:   "Cart cleared",
		Message: "All items have been removed from your cart.",
	})
	return nil
}

// Total is the sum of price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount is the number of distinct lines, not the number of units.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Key is the storage key the cart is saved under.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) indexOf(productID int) int {
	for i, l := range s.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// commit writes lines as the whole cart and adopts them only once the write
// succeeds. An empty cart removes the entry.
func (s *Store) commit(ctx context.Context, lines []domain.CartLine) error {
	if len(lines) == 0 {
		if err := s.storage.RemoveItem(ctx, s.key); err != nil {
			return fmt.Errorf("remove cart %s: %w", s.key, err)
		}
		s.lines = lines
		return nil
	}

	raw, err := Encode(lines)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write cart %s: %w", s.key, err)
	}
	s.lines = lines
	return nil
}
