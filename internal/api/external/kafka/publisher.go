package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ticketpix/internal/api/messaging"
	"ticketpix/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const publishBatchTimeout = 10 * time.Millisecond

// Publisher implements messaging.Publisher using Kafka. Envelopes are keyed by
// envelope key, so all events of one order land on the same partition.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           publishBatchTimeout,
		AllowAutoTopicCreation: true,
	}

	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:     []byte(env.Key),
		Value:   value,
		Headers: append(correlationHeaders(ctx), kafka.Header{Key: typeHeader, Value: []byte(env.Type)}),
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, "error").Inc()
		slog.ErrorContext(ctx, "Failed to publish message",
			"topic", p.writer.Topic,
			"key", env.Key,
			slog.Any("error", err))
		return err
	}

	metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, "success").Inc()
	slog.DebugContext(ctx, "Message published",
		"topic", p.writer.Topic,
		"key", env.Key,
		"type", env.Type,
		"event_id", env.EventID)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
