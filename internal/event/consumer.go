package event

import (
	"log/slog"
	"time"

	pkgkafka "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/kafka"
)

// ConsumerGroupConfirmation is the consumer group of the order-confirmation worker.
const ConsumerGroupConfirmation = "kranian-order-confirmation"

// ConsumerOptions tunes the order-confirmation consumer.
type ConsumerOptions struct {
	MaxAttempts int
	Backoff     time.Duration
	DLQ         pkgkafka.DeadLetterPublisher
}

// NewConfirmationConsumer subscribes handler to order.placed in the
// confirmation consumer group.
func NewConfirmationConsumer(brokers []string, handler pkgkafka.Handler, opts ConsumerOptions, logger *slog.Logger) *pkgkafka.Consumer {
	cfg := pkgkafka.ConsumerConfig{
		Brokers:  brokers,
		GroupID:  ConsumerGroupConfirmation,
		Topic:    TopicOrderPlaced,
		MinBytes: 1,
		MaxBytes: 10e6,
	}

	consumerOpts := []pkgkafka.ConsumerOption{pkgkafka.WithRetry(opts.MaxAttempts, opts.Backoff)}
	if opts.DLQ != nil {
		consumerOpts = append(consumerOpts, pkgkafka.WithDLQ(opts.DLQ))
	}
	return pkgkafka.NewConsumer(cfg, handler, logger, consumerOpts...)
}
