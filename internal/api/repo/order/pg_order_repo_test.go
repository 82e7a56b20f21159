package order_repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ticketpix/internal/api/domain/order"
	"ticketpix/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectOrders = `SELECT o.id, o.product_id, COALESCE\(p.name, ''\), o.customer_name, o.customer_phone, o.customer_email, o.quantity, o.unit_price, o.total_amount, o.payment_status, o.payment_method, o.pix_key, o.notes, o.created_at, o.updated_at FROM orders o LEFT JOIN products p ON p.id = o.product_id`

var orderColumns = []string{"id", "product_id", "product_name", "customer_name", "customer_phone", "customer_email", "quantity", "unit_price", "total_amount", "payment_status", "payment_method", "pix_key", "notes", "created_at", "updated_at"}

// testPgOrderRepo wraps the mock pool to implement the transaction testing
type testPgOrderRepo struct {
	repo
	pool pgxmock.PgxPoolIface
	pg   *postgres.Postgres
}

func (r *testPgOrderRepo) InTransaction(ctx context.Context, fn func(repo order.TxOrderRepo) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txRepo := &repo{db: tx, builder: r.pg.Builder}

	if err := fn(txRepo); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func newMockRepo(t *testing.T) (*repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, mock
}

func TestGetOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("should join product name and filter by status", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		query, _ := order.NewOrdersQueryBuilder().
			WithStatuses(order.StatusPending).
			WithPagination(order.Pagination{PageSize: 10, PageNumber: 2}).
			Build()

		rows := mock.NewRows(orderColumns).
			AddRow("order-1", "prod-1", "Show", "Maria", "11999998888", "maria@example.com", 2, 50.0, 100.0, "pending", "pix", nil, nil, now, now)

		mock.ExpectQuery(selectOrders+` WHERE o.payment_status IN \(\$1\) ORDER BY o.created_at desc LIMIT 10 OFFSET 10`).
			WithArgs(order.StatusPending).
			WillReturnRows(rows)

		result, err := repo.GetOrders(ctx, query)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Show", result[0].ProductName)
		assert.Equal(t, 100.0, result[0].TotalAmount)
		assert.Equal(t, order.StatusPending, result[0].PaymentStatus)
		assert.Nil(t, result[0].PixKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should filter by id and product", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		query, _ := order.NewOrdersQueryBuilder().WithIDs("order-1").WithProductIDs("prod-1").Build()

		mock.ExpectQuery(selectOrders+` WHERE o.id IN \(\$1\) AND o.product_id IN \(\$2\) ORDER BY o.created_at desc`).
			WithArgs("order-1", "prod-1").
			WillReturnRows(mock.NewRows(orderColumns))

		result, err := repo.GetOrders(ctx, query)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should wrap query error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		query, _ := order.NewOrdersQueryBuilder().Build()
		mock.ExpectQuery(selectOrders).WillReturnError(errors.New("connection refused"))

		_, err := repo.GetOrders(ctx, query)

		assert.EqualError(t, err, "query orders: connection refused")
	})
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	pixKey := "contato@arenatransformados.com.br"
	o := order.Order{
		ID: "order-1", ProductID: "prod-1", CustomerName: "Maria", CustomerPhone: "11999998888",
		CustomerEmail: "maria@example.com", Quantity: 2, UnitPrice: 50, TotalAmount: 100,
		PaymentStatus: order.StatusPending, PaymentMethod: order.PaymentMethodPIX, PixKey: &pixKey,
		CreatedAt: now, UpdatedAt: now,
	}

	t.Run("should insert order", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`INSERT INTO orders \(id,product_id,customer_name,customer_phone,customer_email,quantity,unit_price,total_amount,payment_status,payment_method,pix_key,notes,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9,\$10,\$11,\$12,\$13,\$14\)`).
			WithArgs("order-1", "prod-1", "Maria", "11999998888", "maria@example.com", 2, 50.0, 100.0,
				order.StatusPending, "pix", pgxmock.AnyArg(), pgxmock.AnyArg(), now, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.CreateOrder(ctx, o)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should map missing product", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`INSERT INTO orders`).
			WithArgs(anyArgs(14)...).
			WillReturnError(errors.New(`ERROR: insert or update on table "orders" violates foreign key constraint "orders_product_id_fkey"`))

		err := repo.CreateOrder(ctx, o)

		assert.ErrorIs(t, err, order.ErrProductUnavailable)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("should update only status and timestamp", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE orders SET payment_status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(order.StatusPaid, "order-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdatePaymentStatus(ctx, "order-1", order.StatusPaid)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should report missing order", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(order.StatusPaid, "missing").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdatePaymentStatus(ctx, "missing", order.StatusPaid)

		assert.ErrorIs(t, err, order.ErrNotFound)
	})
}

func TestAdjustSoldQuantity(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE products SET sold_quantity = GREATEST\(sold_quantity \+ \$1, 0\), updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(-3, "prod-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.AdjustSoldQuantity(context.Background(), "prod-1", -3)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .* FROM orders`).
		WillReturnRows(mock.NewRows([]string{"products", "orders", "revenue", "pending"}).AddRow(3, 5, 250.0, 2))

	stats, err := repo.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, order.Stats{TotalProducts: 3, TotalOrders: 5, TotalRevenue: 250, PendingOrders: 2}, stats)
}

func TestInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("should commit status change and sold counter together", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		pg := &postgres.Postgres{Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
		txRepo := &testPgOrderRepo{repo: repo{db: mock, builder: pg.Builder}, pool: mock, pg: pg}

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders SET payment_status`).
			WithArgs(order.StatusPaid, "order-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE products SET sold_quantity`).
			WithArgs(2, "prod-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err = txRepo.InTransaction(ctx, func(tx order.TxOrderRepo) error {
			if err := tx.UpdatePaymentStatus(ctx, "order-1", order.StatusPaid); err != nil {
				return err
			}
			return tx.AdjustSoldQuantity(ctx, "prod-1", 2)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should roll back when a statement fails", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		pg := &postgres.Postgres{Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
		txRepo := &testPgOrderRepo{repo: repo{db: mock, builder: pg.Builder}, pool: mock, pg: pg}

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders SET payment_status`).
			WithArgs(order.StatusPaid, "order-1").
			WillReturnError(errors.New("deadlock"))
		mock.ExpectRollback()

		err = txRepo.InTransaction(ctx, func(tx order.TxOrderRepo) error {
			return tx.UpdatePaymentStatus(ctx, "order-1", order.StatusPaid)
		})

		assert.EqualError(t, err, "update payment status: deadlock")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
