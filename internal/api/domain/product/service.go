package product

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const searchLimit = 20

type ProductService struct {
	repo  ProductRepo
	index ProductIndex

	now   func() time.Time
	newID func() string
}

// NewProductService builds the catalogue service. index may be nil, in which
// case search falls back to the repository.
func NewProductService(repo ProductRepo, index ProductIndex) *ProductService {
	return &ProductService{
		repo:  repo,
		index: index,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// ListActive returns the storefront catalogue, newest first.
func (s *ProductService) ListActive(ctx context.Context) ([]Product, error) {
	query, _ := NewProductsQueryBuilder().
		WithStatuses(StatusActive).
		Build()

	products, err := s.repo.GetProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return products, nil
}

// GetBySlug finds an active product by slug.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (Product, error) {
	query, _ := NewProductsQueryBuilder().
		WithSlugs(slug).
		WithStatuses(StatusActive).
		Build()

	return first(ctx, s.repo, query)
}

// List returns every product regardless of status, newest first.
func (s *ProductService) List(ctx context.Context) ([]Product, error) {
	query, _ := NewProductsQueryBuilder().Build()

	products, err := s.repo.GetProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (Product, error) {
	query, _ := NewProductsQueryBuilder().
		WithIDs(id).
		Build()

	return first(ctx, s.repo, query)
}

func (s *ProductService) Create(ctx context.Context, in Input) (Product, error) {
	if err := in.Normalize(); err != nil {
		return Product{}, err
	}

	now := s.now()
	p := Product{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(&p)

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	s.reindex(ctx, p)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in Input) (Product, error) {
	if err := in.Normalize(); err != nil {
		return Product{}, err
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("load product: %w", err)
	}

	in.apply(&p)
	p.UpdatedAt = s.now()

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}

	s.reindex(ctx, p)
	return p, nil
}

// Search finds active products by name or description. Blank text lists the
// whole active catalogue.
func (s *ProductService) Search(ctx context.Context, text string) ([]Product, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.ListActive(ctx)
	}

	if s.index == nil {
		query, _ := NewProductsQueryBuilder().
			WithStatuses(StatusActive).
			WithSearch(text).
			WithLimit(searchLimit).
			Build()

		products, err := s.repo.GetProducts(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search products: %w", err)
		}
		return products, nil
	}

	ids, err := s.index.SearchProducts(ctx, text, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search product index: %w", err)
	}
	if len(ids) == 0 {
		return []Product{}, nil
	}

	query, _ := NewProductsQueryBuilder().
		WithIDs(ids...).
		WithStatuses(StatusActive).
		Build()

	products, err := s.repo.GetProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load searched products: %w", err)
	}
	return orderByIDs(products, ids), nil
}

func (s *ProductService) reindex(ctx context.Context, p Product) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexProduct(ctx, p); err != nil {
		slog.WarnContext(ctx, "Failed to index product", "product_id", p.ID, slog.Any("error", err))
	}
}

func first(ctx context.Context, repo ProductRepo, query *ProductsQuery) (Product, error) {
	products, err := repo.GetProducts(ctx, query)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	if len(products) == 0 {
		return Product{}, ErrNotFound
	}
	return products[0], nil
}

func orderByIDs(products []Product, ids []string) []Product {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

