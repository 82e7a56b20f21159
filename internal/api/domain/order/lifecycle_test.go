package order

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketpix/internal/api/domain/product"
	"ticketpix/internal/api/messaging"
)

// memoryRepo keeps orders in a map so a whole create/update cycle can be
// observed without a database.
type memoryRepo struct {
	mu     sync.Mutex
	orders map[string]Order
	sold   map[string]int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{orders: map[string]Order{}, sold: map[string]int{}}
}

func (r *memoryRepo) InTransaction(_ context.Context, fn func(repo TxOrderRepo) error) error {
	return fn(r)
}

func (r *memoryRepo) GetOrders(_ context.Context, query *OrdersQuery) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Order
	for _, o := range r.orders {
		if len(query.IDs) > 0 && !slices.Contains(query.IDs, o.ID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *memoryRepo) CreateOrder(_ context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *memoryRepo) UpdatePaymentStatus(_ context.Context, id string, status PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.orders[id]
	o.PaymentStatus = status
	r.orders[id] = o
	return nil
}

func (r *memoryRepo) AdjustSoldQuantity(_ context.Context, productID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sold[productID] += delta
	return nil
}

func (r *memoryRepo) GetStats(context.Context) (Stats, error) {
	return Stats{}, nil
}

type staticCatalog map[string]product.Product

func (c staticCatalog) GetByID(_ context.Context, id string) (product.Product, error) {
	p, ok := c[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

func TestOrderLifecycle_CreateThenMarkPaid(t *testing.T) {
	t.Parallel()

	// given
	ctx := context.Background()
	repo := newMemoryRepo()
	catalog := staticCatalog{"prod-1": {ID: "prod-1", Name: "Show", Price: 50.00, Status: product.StatusActive}}
	service := NewOrderService(repo, catalog, messaging.NoopPublisher{})

	// when
	created, err := service.CreateOrder(ctx, NewOrder{
		ProductID:     "prod-1",
		CustomerName:  "Maria",
		CustomerPhone: "11999998888",
		CustomerEmail: "maria@example.com",
		Quantity:      2,
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, 100.00, created.TotalAmount)
	assert.Equal(t, StatusPending, created.PaymentStatus)

	// when
	paid, err := service.UpdatePaymentStatus(ctx, created.ID, StatusPaid)

	// then
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.PaymentStatus)

	expected := created
	expected.PaymentStatus = StatusPaid
	assert.Equal(t, expected, paid)
	assert.Equal(t, 2, repo.sold["prod-1"])
}
