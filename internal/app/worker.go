package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/config"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/event"
	redisrepo "github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository/redis"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/sender"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/service"
	pkgkafka "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/kafka"
)

const (
	idempotencyScope = "order-confirmation"
	idempotencyTTL   = 24 * time.Hour
	retryBackoff     = 2 * time.Second
)

// Worker consumes order.placed events and sends order confirmations.
type Worker struct {
	consumer *pkgkafka.Consumer
	dlq      *pkgkafka.DLQProducer
	logger   *slog.Logger
}

// NewWorker builds the order-confirmation consumer. Processed event ids are
// remembered in Redis when rdb is non-nil, in memory otherwise.
func NewWorker(cfg *config.Config, snd sender.Sender, rdb *redis.Client, logger *slog.Logger) *Worker {
	var store pkgkafka.IdempotencyStore
	if rdb != nil {
		store = redisrepo.NewIdempotencyStore(rdb, idempotencyScope, idempotencyTTL)
	} else {
		store = pkgkafka.NewMemoryIdempotencyStore(idempotencyTTL)
	}

	confirmations := service.NewConfirmationHandler(snd, logger)
	handler := pkgkafka.IdempotentHandler(store, confirmations.Handle, logger)

	dlq := pkgkafka.NewDLQProducer(cfg.KafkaBrokers, logger)
	consumer := event.NewConfirmationConsumer(cfg.KafkaBrokers, handler, event.ConsumerOptions{
		MaxAttempts: cfg.WorkerRetries,
		Backoff:     retryBackoff,
		DLQ:         dlq,
	}, logger)

	logger.Info("order confirmation worker initialized",
		slog.String("topic", event.TopicOrderPlaced),
		slog.String("consumer_group", event.ConsumerGroupConfirmation),
		slog.String("sender", snd.Name()),
	)

	return &Worker{consumer: consumer, dlq: dlq, logger: logger}
}

// Run consumes until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	return w.consumer.Start(ctx)
}

// Close stops the consumer and the dead-letter producer.
func (w *Worker) Close() error {
	var errs []error
	if err := w.consumer.Close(); err != nil {
		w.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	if err := w.dlq.Close(); err != nil {
		w.logger.Error("dlq producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
