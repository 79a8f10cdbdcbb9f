package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/sender"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

// QuotationInput asks for a quote on one product or on the whole cart.
type QuotationInput struct {
	Contact   domain.Contact
	FromCart  bool
	ProductID int
	Quantity  int
}

// QuotationService builds quotation requests and hands them to the sender.
type QuotationService struct {
	carts    *CartService
	products ProductLookup
	sender   sender.Sender
	events   EventPublisher
	logger   *slog.Logger
}

// NewQuotationService creates a quotation service.
func NewQuotationService(carts *CartService, products ProductLookup, snd sender.Sender, events EventPublisher, logger *slog.Logger) *QuotationService {
	return &QuotationService{
		carts:    carts,
		products: products,
		sender:   snd,
		events:   events,
		logger:   logger,
	}
}

// RequestQuotation sends a quotation request for the session.
func (s *QuotationService) RequestQuotation(ctx context.Context, sessionID string, in QuotationInput) (*domain.QuotationRequest, error) {
	if in.Contact.Name == "" || in.Contact.Email == "" {
		return nil, apperrors.InvalidInput("name and email are required")
	}
	in.Contact.Email = NormalizeEmail(in.Contact.Email)

	q := &domain.QuotationRequest{
		ID:          uuid.NewString(),
		Contact:     in.Contact,
		FromCart:    in.FromCart,
		RequestedAt: time.Now().UTC(),
	}

	source := "product"
	if in.FromCart {
		source = "cart"
		cartView, err := s.carts.View(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if len(cartView.Lines) == 0 {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		for _, l := range cartView.Lines {
			q.Items = append(q.Items, quotationItem(l.Product, l.Quantity))
		}
		total := cartView.Total
		q.CartTotal = &total
	} else {
		product, ok := s.products.ByID(in.ProductID)
		if !ok {
			return nil, apperrors.NotFound("product", strconv.Itoa(in.ProductID))
		}
		if in.Quantity < domain.MinOrderQuantity || in.Quantity > domain.MaxOrderQuantity {
			return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must be between %d and %d",
				domain.MinOrderQuantity, domain.MaxOrderQuantity))
		}
		q.Items = []domain.QuotationItem{quotationItem(product, in.Quantity)}
	}

	if err := s.sender.SendQuotation(ctx, q); err != nil {
		quotationsTotal.WithLabelValues(source, "failed").Inc()
		s.logger.ErrorContext(ctx, "failed to send quotation request",
			slog.String("quotation_id", q.ID),
			slog.String("sender", s.sender.Name()),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.ServiceUnavailable("could not send your quotation request, please try again later")
	}
	quotationsTotal.WithLabelValues(source, "sent").Inc()

	if err := s.events.PublishQuotationRequested(ctx, q); err != nil {
		s.logger.WarnContext(ctx, "failed to publish quotation.requested event",
			slog.String("quotation_id", q.ID),
			slog.String("error", err.Error()),
		)
	}
	return q, nil
}

func quotationItem(p domain.Product, quantity int) domain.QuotationItem {
	return domain.QuotationItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    p.Category,
		UnitPrice:   p.Price,
		Quantity:    quantity,
	}
}
