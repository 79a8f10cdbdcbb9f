package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	pkgkafka "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/kafka"
)

// Kafka topics for storefront domain events. The topic doubles as the event type.
var (
	TopicCartUpdated          = pkgkafka.Topic("cart", "updated")
	TopicOrderPlaced          = pkgkafka.Topic("order", "placed")
	TopicNewsletterSubscribed = pkgkafka.Topic("newsletter", "subscribed")
	TopicQuotationRequested   = pkgkafka.Topic("quotation", "requested")
)

// Aggregate types.
const (
	AggregateTypeCart         = "cart"
	AggregateTypeOrder        = "order"
	AggregateTypeSubscription = "subscription"
	AggregateTypeQuotation    = "quotation"
)

// SourceStorefront identifies events published by this service.
const SourceStorefront = "storefront"

// Publisher writes an event to a topic. *pkgkafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string          `json:"session_id"`
	Items     []CartItemData  `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// CartItemData is one line within a cart event.
type CartItemData struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// NewsletterSubscribedData is the payload for a newsletter.subscribed event.
type NewsletterSubscribedData struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Producer publishes storefront domain events.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates an event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// PublishCartUpdated publishes a cart.updated event for the session's cart.
func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, lines []domain.CartLine, total decimal.Decimal) error {
	items := make([]CartItemData, len(lines))
	for i, l := range lines {
		items[i] = CartItemData{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		}
	}

	data := CartUpdatedData{
		SessionID: sessionID,
		Items:     items,
		ItemCount: len(lines),
		Total:     total,
	}
	if err := p.publish(ctx, TopicCartUpdated, sessionID, AggregateTypeCart, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.Int("item_count", len(lines)),
	)
	return nil
}

// PublishOrderPlaced publishes an order.placed event carrying the full order.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	if err := p.publish(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, order); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", order.ID),
	)
	return nil
}

// PublishNewsletterSubscribed publishes a newsletter.subscribed event.
func (p *Producer) PublishNewsletterSubscribed(ctx context.Context, sub *domain.Subscription) error {
	data := NewsletterSubscribedData{
		Email:        sub.Email,
		SubscribedAt: sub.SubscribedAt.UTC(),
	}
	return p.publish(ctx, TopicNewsletterSubscribed, strconv.FormatInt(sub.ID, 10), AggregateTypeSubscription, data)
}

// PublishQuotationRequested publishes a quotation.requested event.
func (p *Producer) PublishQuotationRequested(ctx context.Context, q *domain.QuotationRequest) error {
	if err := p.publish(ctx, TopicQuotationRequested, q.ID, AggregateTypeQuotation, q); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published quotation.requested event",
		slog.String("quotation_id", q.ID),
		slog.Int("items", len(q.Items)),
	)
	return nil
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	event.FromContext(ctx)

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}
