//go:build integration

package session_repo

import (
	"context"
	"testing"
	"time"

	"ticketpix/internal/api/domain/checkout"
	"ticketpix/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	rc, err := testinfra.NewRedis(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { rc.Cleanup(ctx) })

	store := NewRedisStore(rc.Client, time.Minute)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, checkout.ErrSessionNotFound)

	sess := checkout.Session{
		ID:   "sess-1",
		Flow: checkout.FlowTicket,
		Step: checkout.StepDetails,
		Ticket: &checkout.TicketForm{
			Product:      checkout.ProductSnapshot{ID: "prod-1", Name: "Rock Night", Price: 50, MaxQuantity: 10},
			CustomerName: "Ana",
			Quantity:     2,
			TotalAmount:  100,
		},
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	ttl, err := rc.Client.TTL(ctx, keyPrefix+"sess-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, checkout.ErrSessionNotFound)
}
