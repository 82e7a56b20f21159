package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ticketpix/internal/api/messaging"

	"github.com/segmentio/kafka-go"
)

const commitTimeout = 5 * time.Second

// Consumer implements messaging.Worker for one topic within a consumer group.
// Offsets are committed only after the handler returns nil.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:          brokers,
		Topic:            topic,
		GroupID:          groupID,
		MinBytes:         1,
		MaxBytes:         10e6,
		CommitInterval:   0,
		StartOffset:      kafka.FirstOffset,
		MaxWait:          500 * time.Millisecond,
		RebalanceTimeout: 5 * time.Second,
	})

	return &Consumer{reader: reader}
}

// Start blocks until ctx is cancelled or fetching fails.
func (c *Consumer) Start(ctx context.Context, handler messaging.MessageHandler) error {
	cfg := c.reader.Config()
	slog.Info("Consumer started", "topic", cfg.Topic, "group_id", cfg.GroupID)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				slog.Info("Consumer stopped", "topic", cfg.Topic)
				return nil
			}
			slog.Error("Failed to fetch message", "topic", cfg.Topic, slog.Any("error", err))
			return err
		}

		msgCtx := withCorrelation(ctx, msg.Headers)
		log := slog.With(
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key))

		log.DebugContext(msgCtx, "Message received")

		if err := handler(msgCtx, msg.Key, msg.Value); err != nil {
			// left uncommitted; redelivered after restart or rebalance
			log.ErrorContext(msgCtx, "Handler error, message not committed", slog.Any("error", err))
			continue
		}

		// Commit on a fresh context so a shutdown does not drop a handled offset.
		commitCtx, cancel := context.WithTimeout(context.Background(), commitTimeout)
		err = c.reader.CommitMessages(commitCtx, msg)
		cancel()
		if err != nil {
			log.ErrorContext(msgCtx, "Failed to commit message", slog.Any("error", err))
			continue
		}

		log.DebugContext(msgCtx, "Message committed")
	}
}

func (c *Consumer) Close() error {
	cfg := c.reader.Config()
	slog.Info("Closing consumer", "topic", cfg.Topic, "group_id", cfg.GroupID)
	return c.reader.Close()
}
