package producer

import (
	"context"
	"time"

	"go-leave/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const drainBatchSize = 50

// DrainOutbox polls the outbox table and relays pending leave events to
// Kafka. Failed publishes stay in the table with a bumped retry counter and
// are retried on a later tick.
func DrainOutbox(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainPending(ctx, repo, writer, log); err != nil {
				log.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

func drainPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	logger.Info("relaying pending outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}
