package product_repo

import (
	"context"
	"fmt"
	"strings"

	"ticketpix/internal/api/domain/product"
	"ticketpix/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var productColumns = []string{
	"id", "name", "description", "price", "event_date", "status", "slug",
	"image_url", "max_quantity", "sold_quantity", "created_at", "updated_at",
}

type PgProductRepo struct {
	repo
}

func NewPgProductRepo(pg *postgres.Postgres) product.ProductRepo {
	return &PgProductRepo{
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) GetProducts(ctx context.Context, query *product.ProductsQuery) ([]product.Product, error) {
	sql, args, err := r.buildProductsQuery(query)
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return parseProductRows(rows)
}

func (r *repo) CreateProduct(ctx context.Context, p product.Product) error {
	query, args, err := r.builder.Insert("products").
		Columns(productColumns...).
		Values(p.ID, p.Name, p.Description, p.Price, p.EventDate, p.Status, p.Slug,
			p.ImageURL, p.MaxQuantity, p.SoldQuantity, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		if isSlugConflict(err) {
			return product.ErrSlugTaken
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *repo) UpdateProduct(ctx context.Context, p product.Product) error {
	query, args, err := r.builder.Update("products").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("event_date", p.EventDate).
		Set("status", p.Status).
		Set("slug", p.Slug).
		Set("image_url", p.ImageURL).
		Set("max_quantity", p.MaxQuantity).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isSlugConflict(err) {
			return product.ErrSlugTaken
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *repo) buildProductsQuery(q *product.ProductsQuery) (string, []any, error) {
	query := r.builder.Select(productColumns...).
		From("products")

	if len(q.IDs) > 0 {
		query = query.Where(squirrel.Eq{"id": q.IDs})
	}

	if len(q.Slugs) > 0 {
		query = query.Where(squirrel.Eq{"slug": q.Slugs})
	}

	if len(q.Statuses) > 0 {
		query = query.Where(squirrel.Eq{"status": q.Statuses})
	}

	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	query = query.OrderBy(fmt.Sprintf("%s %s", q.SortBy, q.SortOrder))

	if q.Limit > 0 {
		query = query.Limit(uint64(q.Limit))
	}

	return query.ToSql()
}

func parseProductRows(rows pgx.Rows) ([]product.Product, error) {
	products := make([]product.Product, 0)
	for rows.Next() {
		var p product.Product
		var rawStatus string
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.EventDate, &rawStatus, &p.Slug,
			&p.ImageURL, &p.MaxQuantity, &p.SoldQuantity, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}

		status, err := product.NewStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("invalid status in database: %w", err)
		}
		p.Status = status

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func isSlugConflict(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "products_slug_key")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
