package kafka

import (
	"context"
	"testing"

	"ticketpix/pkg/correlation"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationHeaders(t *testing.T) {
	t.Parallel()

	assert.Empty(t, correlationHeaders(context.Background()))

	ctx := correlation.WithID(context.Background(), "corr-1")
	headers := correlationHeaders(ctx)

	require.Len(t, headers, 1)
	assert.Equal(t, correlation.HeaderName, headers[0].Key)
	assert.Equal(t, "corr-1", string(headers[0].Value))
}

func TestWithCorrelation(t *testing.T) {
	t.Parallel()

	t.Run("should take the id from headers", func(t *testing.T) {
		ctx := withCorrelation(context.Background(), []kafka.Header{
			{Key: typeHeader, Value: []byte("order.created")},
			{Key: correlation.HeaderName, Value: []byte("corr-1")},
		})

		assert.Equal(t, "corr-1", correlation.FromContext(ctx))
	})

	t.Run("should generate an id when missing", func(t *testing.T) {
		ctx := withCorrelation(context.Background(), nil)

		assert.NotEmpty(t, correlation.FromContext(ctx))
	})
}
