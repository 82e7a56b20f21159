package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ticketpix/internal/api/messaging"
	"ticketpix/pkg/metrics"
)

type OrderService struct {
	orderRepo OrderRepo
	products  ProductCatalog
	publisher messaging.Publisher

	now   func() time.Time
	newID func() string
}

func NewOrderService(orderRepo OrderRepo, products ProductCatalog, publisher messaging.Publisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		products:  products,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (s *OrderService) GetOrderByID(ctx context.Context, id string) (Order, error) {
	return getOrderByID(ctx, s.orderRepo, id)
}

func getOrderByID(ctx context.Context, repo TxOrderRepo, id string) (Order, error) {
	query, _ := NewOrdersQueryBuilder().
		WithIDs(id).
		Build()

	orders, err := repo.GetOrders(ctx, query)
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	if len(orders) == 0 {
		return Order{}, ErrNotFound
	}
	return orders[0], nil
}

func (s *OrderService) GetOrders(ctx context.Context, query OrdersQuery) ([]Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx, &query)
	if err != nil {
		return nil, fmt.Errorf("filter orders: %w", err)
	}
	return orders, nil
}

// CreateOrder records a pending PIX order. Unit price and total come from the
// stored product, never from the caller. The remaining-capacity check is not
// atomic with the insert.
func (s *OrderService) CreateOrder(ctx context.Context, n NewOrder) (Order, error) {
	if err := n.Validate(); err != nil {
		return Order{}, err
	}

	p, err := s.products.GetByID(ctx, n.ProductID)
	if err != nil {
		return Order{}, fmt.Errorf("load product: %w", err)
	}
	if !p.IsPurchasable() {
		return Order{}, ErrProductUnavailable
	}
	if remaining, capped := p.Remaining(); capped && n.Quantity > remaining {
		return Order{}, fmt.Errorf("%w: %d requested, %d left", ErrCapacityExceeded, n.Quantity, remaining)
	}

	now := s.now()
	o := Order{
		ID:            s.newID(),
		ProductID:     p.ID,
		ProductName:   p.Name,
		CustomerName:  n.CustomerName,
		CustomerPhone: n.CustomerPhone,
		CustomerEmail: n.CustomerEmail,
		Quantity:      n.Quantity,
		UnitPrice:     p.Price,
		TotalAmount:   Total(p.Price, n.Quantity),
		PaymentStatus: StatusPending,
		PaymentMethod: PaymentMethodPIX,
		PixKey:        n.PixKey,
		Notes:         n.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orderRepo.CreateOrder(ctx, o); err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}
	metrics.OrdersCreated.Inc()

	s.publish(ctx, EventCreated, Event{Order: o})
	return o, nil
}

// UpdatePaymentStatus changes only the payment status of an order. Any status
// may follow any other. Moving into or out of paid adjusts the product's sold
// counter in the same transaction.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (Order, error) {
	if _, err := NewPaymentStatus(string(status)); err != nil {
		return Order{}, err
	}

	var (
		updated  Order
		previous PaymentStatus
	)
	err := s.orderRepo.InTransaction(ctx, func(tx TxOrderRepo) error {
		o, err := getOrderByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		previous = o.PaymentStatus

		if o.PaymentStatus == status {
			updated = o
			return nil
		}

		if err := tx.UpdatePaymentStatus(ctx, id, status); err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}

		if delta := soldDelta(o.PaymentStatus, status, o.Quantity); delta != 0 {
			if err := tx.AdjustSoldQuantity(ctx, o.ProductID, delta); err != nil {
				return fmt.Errorf("adjust sold quantity: %w", err)
			}
		}

		updated, err = getOrderByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("get updated order: %w", err)
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	if previous != status {
		s.publish(ctx, EventStatusChanged, Event{Order: updated, PreviousStatus: &previous})
	}
	return updated, nil
}

func (s *OrderService) Stats(ctx context.Context) (Stats, error) {
	stats, err := s.orderRepo.GetStats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, event Event) {
	env, err := messaging.NewEnvelope(event.Order.ID, eventType, event)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build order envelope", "order_id", event.Order.ID, slog.Any("error", err))
		return
	}
	if err := s.publisher.Publish(ctx, env); err != nil {
		slog.WarnContext(ctx, "Failed to publish order event",
			"order_id", event.Order.ID,
			"type", eventType,
			slog.Any("error", err))
	}
}

func soldDelta(from, to PaymentStatus, quantity int) int {
	switch {
	case from != StatusPaid && to == StatusPaid:
		return quantity
	case from == StatusPaid && to != StatusPaid:
		return -quantity
	}
	return 0
}
