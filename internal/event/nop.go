package event

import (
	"context"
	"log/slog"

	pkgkafka "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/kafka"
)

// NopPublisher drops events. Used when no Kafka brokers are configured.
type NopPublisher struct {
	logger *slog.Logger
}

// NewNopPublisher creates a publisher that only logs at debug level.
func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (n *NopPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	n.logger.DebugContext(ctx, "event publishing disabled, dropping event",
		slog.String("topic", topic),
		slog.String("event_id", event.EventID),
	)
	return nil
}
