package product

import "context"

//go:generate mockgen -source repo.go -destination mock_repo.go -package product

type ProductRepo interface {
	GetProducts(ctx context.Context, query *ProductsQuery) ([]Product, error)
	CreateProduct(ctx context.Context, p Product) error
	UpdateProduct(ctx context.Context, p Product) error
}

// ProductIndex is a full-text index over the catalogue.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p Product) error
	// SearchProducts returns IDs of matching active products, best match first.
	SearchProducts(ctx context.Context, text string, limit int) ([]string, error)
}
