package kafka

import (
	"context"

	"ticketpix/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

const (
	typeHeader        = "event_type"
	errorHeader       = "error"
	failedAtHeader    = "failed_at"
	sourceTopicHeader = "source_topic"
)

func correlationHeaders(ctx context.Context) []kafka.Header {
	if corrID := correlation.FromContext(ctx); corrID != "" {
		return []kafka.Header{{Key: correlation.HeaderName, Value: []byte(corrID)}}
	}
	return nil
}

// withCorrelation puts the message's correlation ID into ctx, generating one
// for messages that were published without it.
func withCorrelation(ctx context.Context, headers []kafka.Header) context.Context {
	for _, h := range headers {
		if h.Key == correlation.HeaderName && len(h.Value) > 0 {
			return correlation.WithID(ctx, string(h.Value))
		}
	}
	return correlation.WithID(ctx, correlation.NewID())
}
