package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ticketpix/internal/api/domain/order"
	"ticketpix/internal/api/messaging"

	"github.com/gin-gonic/gin"
	"github.com/google/go-querystring/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	orderID   = "3f6c2a34-5d2b-4c1e-9a63-7c1f0e8b2d41"
	productID = "8a1d9e52-0b7f-4f3a-b2c4-6e5d3a9f1c07"
)

func orderEngine(t *testing.T) (*gin.Engine, *order.MockOrderRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := order.NewMockOrderRepo(ctrl)
	svc := order.NewOrderService(repo, order.NewMockProductCatalog(ctrl), messaging.NoopPublisher{})
	h := NewOrderHandler(svc)

	return newEngine(func(e *gin.Engine) {
		e.GET("/admin/orders", h.Filter)
		e.GET("/admin/orders/:order_id", h.Get)
		e.PATCH("/admin/orders/:order_id/status", h.UpdateStatus)
		e.GET("/admin/stats", h.Stats)
	}), repo
}

func TestOrderHandler_Filter(t *testing.T) {
	t.Run("passes filters to the repository", func(t *testing.T) {
		e, repo := orderEngine(t)

		params, err := query.Values(FilterParams{
			Statuses:   []string{"pending", "paid"},
			ProductIDs: []string{productID},
			PageSize:   20,
			PageNumber: 2,
		})
		require.NoError(t, err)

		repo.EXPECT().GetOrders(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q *order.OrdersQuery) ([]order.Order, error) {
				assert.Equal(t, []order.PaymentStatus{order.StatusPending, order.StatusPaid}, q.Statuses)
				assert.Equal(t, []string{productID}, q.ProductIDs)
				assert.Equal(t, &order.Pagination{PageSize: 20, PageNumber: 2}, q.Pagination)
				assert.Equal(t, "created_at", q.SortBy)
				assert.Equal(t, "desc", q.SortOrder)
				return []order.Order{{ID: "order-1"}}, nil
			})

		rec := doJSON(t, e, http.MethodGet, "/admin/orders?"+params.Encode(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]order.Order](t, rec), 1)
	})

	t.Run("accepts comma separated statuses", func(t *testing.T) {
		e, repo := orderEngine(t)

		repo.EXPECT().GetOrders(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q *order.OrdersQuery) ([]order.Order, error) {
				assert.Equal(t, []order.PaymentStatus{order.StatusCancelled, order.StatusRefunded}, q.Statuses)
				return nil, nil
			})

		rec := doJSON(t, e, http.MethodGet, "/admin/orders?status=cancelled,refunded", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown status is a bad request", func(t *testing.T) {
		e, _ := orderEngine(t)

		rec := doJSON(t, e, http.MethodGet, "/admin/orders?status=shipped", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed product id is a bad request", func(t *testing.T) {
		e, _ := orderEngine(t)

		rec := doJSON(t, e, http.MethodGet, "/admin/orders?product_id="+productID+",abc", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[messageBody](t, rec).Message, `"abc"`)
	})

	t.Run("bad sort is a bad request", func(t *testing.T) {
		e, _ := orderEngine(t)

		params, err := query.Values(FilterParams{SortBy: "customer_name"})
		require.NoError(t, err)

		rec := doJSON(t, e, http.MethodGet, "/admin/orders?"+params.Encode(), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderHandler_Get(t *testing.T) {
	t.Run("unknown order", func(t *testing.T) {
		e, repo := orderEngine(t)

		repo.EXPECT().GetOrders(gomock.Any(), gomock.Any()).Return(nil, nil)

		rec := doJSON(t, e, http.MethodGet, "/admin/orders/"+orderID, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id never reaches the repository", func(t *testing.T) {
		e, _ := orderEngine(t)

		rec := doJSON(t, e, http.MethodGet, "/admin/orders/abc", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, order.ErrNotFound.Error(), decode[messageBody](t, rec).Message)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		e, _ := orderEngine(t)

		rec := doJSON(t, e, http.MethodPatch, "/admin/orders/"+orderID+"/status", gin.H{"payment_status": "shipped"})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("missing status", func(t *testing.T) {
		e, _ := orderEngine(t)

		rec := doJSON(t, e, http.MethodPatch, "/admin/orders/"+orderID+"/status", gin.H{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		e, _ := orderEngine(t)

		rec := doJSON(t, e, http.MethodPatch, "/admin/orders/abc/status", gin.H{"payment_status": "paid"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("marks paid", func(t *testing.T) {
		e, repo := orderEngine(t)

		pending := order.Order{ID: orderID, ProductID: productID, Quantity: 2, UnitPrice: 50, TotalAmount: 100, PaymentStatus: order.StatusPending}
		paid := pending
		paid.PaymentStatus = order.StatusPaid

		repo.EXPECT().InTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(order.TxOrderRepo) error) error {
				return fn(repo)
			})
		gomock.InOrder(
			repo.EXPECT().GetOrders(gomock.Any(), gomock.Any()).Return([]order.Order{pending}, nil),
			repo.EXPECT().UpdatePaymentStatus(gomock.Any(), orderID, order.StatusPaid).Return(nil),
			repo.EXPECT().AdjustSoldQuantity(gomock.Any(), productID, 2).Return(nil),
			repo.EXPECT().GetOrders(gomock.Any(), gomock.Any()).Return([]order.Order{paid}, nil),
		)

		rec := doJSON(t, e, http.MethodPatch, "/admin/orders/"+orderID+"/status", gin.H{"payment_status": "paid"})

		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[order.Order](t, rec)
		assert.Equal(t, order.StatusPaid, got.PaymentStatus)
		assert.Equal(t, 100.0, got.TotalAmount)
	})
}

func TestOrderHandler_Stats(t *testing.T) {
	e, repo := orderEngine(t)

	repo.EXPECT().GetStats(gomock.Any()).Return(order.Stats{}, errors.New("database error"))

	rec := doJSON(t, e, http.MethodGet, "/admin/stats", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
