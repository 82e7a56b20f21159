package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketpix/pkg/metrics"
)

var fastRetry = RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

type recordingDLQ struct {
	keys [][]byte
	errs []error
}

func (d *recordingDLQ) PublishToDLQ(_ context.Context, key, _ []byte, err error) error {
	d.keys = append(d.keys, key)
	d.errs = append(d.errs, err)
	return nil
}

func TestWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("should stop after first success", func(t *testing.T) {
		calls := 0
		handler := WithRetry(func(context.Context, []byte, []byte) error {
			calls++
			if calls < 2 {
				return errors.New("transient")
			}
			return nil
		}, fastRetry)

		err := handler(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("should give up after max attempts", func(t *testing.T) {
		calls := 0
		handler := WithRetry(func(context.Context, []byte, []byte) error {
			calls++
			return errors.New("still down")
		}, fastRetry)

		err := handler(context.Background(), nil, nil)

		assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
		assert.ErrorContains(t, err, "still down")
		assert.Equal(t, 3, calls)
	})

	t.Run("should not retry permanent failures", func(t *testing.T) {
		calls := 0
		handler := WithRetry(func(context.Context, []byte, []byte) error {
			calls++
			return fmt.Errorf("%w: bad json", ErrPermanent)
		}, fastRetry)

		err := handler(context.Background(), nil, nil)

		assert.ErrorIs(t, err, ErrPermanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("should return context error when cancelled between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := RetryConfig{MaxAttempts: 3, InitialBackoff: time.Hour, MaxBackoff: time.Hour}
		handler := WithRetry(func(context.Context, []byte, []byte) error {
			cancel()
			return errors.New("fail")
		}, cfg)

		err := handler(ctx, nil, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithDLQ(t *testing.T) {
	t.Parallel()

	t.Run("should forward failures and swallow the error", func(t *testing.T) {
		dlq := &recordingDLQ{}
		handler := WithDLQ(func(context.Context, []byte, []byte) error {
			return errors.New("boom")
		}, dlq)

		err := handler(context.Background(), []byte("order-1"), []byte("{}"))

		require.NoError(t, err)
		require.Len(t, dlq.keys, 1)
		assert.Equal(t, "order-1", string(dlq.keys[0]))
		assert.EqualError(t, dlq.errs[0], "boom")
	})

	t.Run("should not touch the DLQ on success", func(t *testing.T) {
		dlq := &recordingDLQ{}
		handler := WithDLQ(func(context.Context, []byte, []byte) error { return nil }, dlq)

		require.NoError(t, handler(context.Background(), nil, nil))
		assert.Empty(t, dlq.keys)
	})
}

func TestWithMetrics(t *testing.T) {
	t.Parallel()

	topic, group := "metrics-test-topic", "metrics-test-group"
	ok := WithMetrics(topic, group, func(context.Context, []byte, []byte) error { return nil })
	failing := WithMetrics(topic, group, func(context.Context, []byte, []byte) error { return errors.New("x") })

	_ = ok(context.Background(), nil, nil)
	_ = ok(context.Background(), nil, nil)
	_ = failing(context.Background(), nil, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues(topic, group, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues(topic, group, "error")))
}

func TestNewEnvelope(t *testing.T) {
	t.Parallel()

	env, err := NewEnvelope("order-1", "order.created", map[string]int{"quantity": 2})

	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, "order-1", env.Key)
	assert.Equal(t, "order.created", env.Type)
	assert.JSONEq(t, `{"quantity":2}`, string(env.Payload))
	assert.False(t, env.Timestamp.IsZero())
}
