package kafka

import (
	"context"
	"log/slog"
	"time"

	"ticketpix/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// DLQPublisher parks messages that could not be handled on a dead letter
// topic, with the failure reason and source topic in headers.
type DLQPublisher struct {
	writer      *kafka.Writer
	sourceTopic string
}

func NewDLQPublisher(brokers []string, dlqTopic, sourceTopic string) *DLQPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  dlqTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           publishBatchTimeout,
		AllowAutoTopicCreation: true,
	}

	return &DLQPublisher{writer: writer, sourceTopic: sourceTopic}
}

func (p *DLQPublisher) PublishToDLQ(ctx context.Context, key, value []byte, err error) error {
	msg := kafka.Message{
		Key:   key,
		Value: value,
		Headers: append(correlationHeaders(ctx),
			kafka.Header{Key: errorHeader, Value: []byte(err.Error())},
			kafka.Header{Key: failedAtHeader, Value: []byte(time.Now().UTC().Format(time.RFC3339))},
			kafka.Header{Key: sourceTopicHeader, Value: []byte(p.sourceTopic)},
		),
	}

	if writeErr := p.writer.WriteMessages(ctx, msg); writeErr != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, "error").Inc()
		slog.ErrorContext(ctx, "Failed to publish to DLQ",
			"topic", p.writer.Topic,
			"key", string(key),
			slog.Any("error", writeErr),
			slog.Any("original_error", err))
		return writeErr
	}

	metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, "success").Inc()
	slog.WarnContext(ctx, "Message sent to DLQ",
		"topic", p.writer.Topic,
		"key", string(key),
		slog.Any("error", err))
	return nil
}

func (p *DLQPublisher) Close() error {
	return p.writer.Close()
}
