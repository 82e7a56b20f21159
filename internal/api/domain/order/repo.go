package order

import (
	"context"

	"ticketpix/internal/api/domain/product"
)

//go:generate mockgen -source repo.go -destination mock_repo.go -package order

type OrderRepo interface {
	TxOrderRepo
	InTransaction(ctx context.Context, fn func(repo TxOrderRepo) error) error
}

type TxOrderRepo interface {
	GetOrders(ctx context.Context, query *OrdersQuery) ([]Order, error)
	CreateOrder(ctx context.Context, o Order) error
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error
	// AdjustSoldQuantity adds delta to the product's sold counter.
	AdjustSoldQuantity(ctx context.Context, productID string, delta int) error
	GetStats(ctx context.Context) (Stats, error)
}

// ProductCatalog resolves the product an order is placed for.
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
}
