package checkout

import (
	"context"

	"ticketpix/internal/api/domain/order"
	"ticketpix/internal/api/domain/product"
)

//go:generate mockgen -source ports.go -destination mock_ports.go -package checkout

type ProductFinder interface {
	GetBySlug(ctx context.Context, slug string) (product.Product, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, n order.NewOrder) (order.Order, error)
}
