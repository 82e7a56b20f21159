package order_repo

import (
	"context"
	"fmt"
	"strings"

	"ticketpix/internal/api/domain/order"
	"ticketpix/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const statsQuery = `SELECT
	(SELECT COUNT(*) FROM products),
	COUNT(*),
	COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'paid'), 0),
	COUNT(*) FILTER (WHERE payment_status = 'pending')
FROM orders`

// PgOrderRepo is the main repository
type PgOrderRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgOrderRepo(pg *postgres.Postgres) order.OrderRepo {
	return &PgOrderRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

func (r *PgOrderRepo) InTransaction(ctx context.Context, fn func(repo order.TxOrderRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		txRepo := &repo{db: tx, builder: r.pg.Builder}
		return fn(txRepo)
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) GetOrders(ctx context.Context, query *order.OrdersQuery) ([]order.Order, error) {
	sql, args, err := r.buildOrdersQuery(query)
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	return parseOrderRows(rows)
}

func (r *repo) CreateOrder(ctx context.Context, o order.Order) error {
	query, args, err := r.builder.Insert("orders").
		Columns("id", "product_id", "customer_name", "customer_phone", "customer_email", "quantity",
			"unit_price", "total_amount", "payment_status", "payment_method", "pix_key", "notes",
			"created_at", "updated_at").
		Values(o.ID, o.ProductID, o.CustomerName, o.CustomerPhone, o.CustomerEmail, o.Quantity,
			o.UnitPrice, o.TotalAmount, o.PaymentStatus, o.PaymentMethod, o.PixKey, o.Notes,
			o.CreatedAt, o.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		if strings.Contains(err.Error(), "orders_product_id_fkey") {
			return fmt.Errorf("%w: product %s", order.ErrProductUnavailable, o.ProductID)
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *repo) UpdatePaymentStatus(ctx context.Context, id string, status order.PaymentStatus) error {
	query, args, err := r.builder.Update("orders").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *repo) AdjustSoldQuantity(ctx context.Context, productID string, delta int) error {
	query, args, err := r.builder.Update("products").
		Set("sold_quantity", squirrel.Expr("GREATEST(sold_quantity + ?, 0)", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sold quantity query: %w", err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("adjust sold quantity: %w", err)
	}
	return nil
}

func (r *repo) GetStats(ctx context.Context) (order.Stats, error) {
	var s order.Stats
	err := r.db.QueryRow(ctx, statsQuery).Scan(&s.TotalProducts, &s.TotalOrders, &s.TotalRevenue, &s.PendingOrders)
	if err != nil {
		return order.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return s, nil
}

func (r *repo) buildOrdersQuery(q *order.OrdersQuery) (string, []any, error) {
	query := r.builder.Select(
		"o.id", "o.product_id", "COALESCE(p.name, '')", "o.customer_name", "o.customer_phone",
		"o.customer_email", "o.quantity", "o.unit_price", "o.total_amount", "o.payment_status",
		"o.payment_method", "o.pix_key", "o.notes", "o.created_at", "o.updated_at").
		From("orders o").
		LeftJoin("products p ON p.id = o.product_id")

	if len(q.IDs) > 0 {
		query = query.Where(squirrel.Eq{"o.id": q.IDs})
	}

	if len(q.ProductIDs) > 0 {
		query = query.Where(squirrel.Eq{"o.product_id": q.ProductIDs})
	}

	if len(q.Statuses) > 0 {
		query = query.Where(squirrel.Eq{"o.payment_status": q.Statuses})
	}

	query = query.OrderBy(fmt.Sprintf("o.%s %s", q.SortBy, q.SortOrder))

	if q.Pagination != nil {
		offset := (q.Pagination.PageNumber - 1) * q.Pagination.PageSize
		query = query.Limit(uint64(q.Pagination.PageSize)).Offset(uint64(offset))
	}

	return query.ToSql()
}

func parseOrderRows(rows pgx.Rows) ([]order.Order, error) {
	orders := make([]order.Order, 0)
	for rows.Next() {
		var o order.Order
		var rawStatus string
		err := rows.Scan(&o.ID, &o.ProductID, &o.ProductName, &o.CustomerName, &o.CustomerPhone,
			&o.CustomerEmail, &o.Quantity, &o.UnitPrice, &o.TotalAmount, &rawStatus,
			&o.PaymentMethod, &o.PixKey, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		status, err := order.NewPaymentStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("invalid status in database: %w", err)
		}
		o.PaymentStatus = status

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}
