package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"ticketpix/internal/api/domain/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service *order.OrderService
}

func NewOrderHandler(s *order.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// FilterParams are the admin order list filters.
type FilterParams struct {
	Statuses   []string `form:"status" url:"status,omitempty"`
	ProductIDs []string `form:"product_id" url:"product_id,omitempty"`
	PageSize   int      `form:"limit" url:"limit,omitempty" binding:"omitempty,min=1,max=500"`
	PageNumber int      `form:"page" url:"page,omitempty" binding:"omitempty,min=1"`
	SortBy     string   `form:"sort_by" url:"sort_by,omitempty" binding:"omitempty,oneof=created_at updated_at"`
	SortOrder  string   `form:"sort_order" url:"sort_order,omitempty" binding:"omitempty,oneof=asc desc"`
}

func (h *OrderHandler) Filter(c *gin.Context) {
	query, err := h.createFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.service.GetOrders(c.Request.Context(), *query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "order_id", order.ErrNotFound)
	if !ok {
		return
	}

	res, err := h.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type UpdateStatusRequest struct {
	PaymentStatus order.PaymentStatus `json:"payment_status" binding:"required"`
}

// UpdateStatus is the admin override of an order's payment status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := pathID(c, "order_id", order.ErrNotFound)
	if !ok {
		return
	}

	res, err := h.service.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) Stats(c *gin.Context) {
	res, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) createFilter(c *gin.Context) (*order.OrdersQuery, error) {
	var params FilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, fmt.Errorf("%w: %s", order.ErrInvalidQuery, err.Error())
	}

	b := order.NewOrdersQueryBuilder()

	if len(params.Statuses) > 0 {
		statuses := make([]order.PaymentStatus, 0, len(params.Statuses))
		for _, raw := range splitValues(params.Statuses) {
			s, err := order.NewPaymentStatus(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", order.ErrInvalidQuery, err.Error())
			}
			statuses = append(statuses, s)
		}
		b.WithStatuses(statuses...)
	}
	if ids := splitValues(params.ProductIDs); len(ids) > 0 {
		for _, id := range ids {
			if err := uuid.Validate(id); err != nil {
				return nil, fmt.Errorf("%w: product_id %q is not a valid id", order.ErrInvalidQuery, id)
			}
		}
		b.WithProductIDs(ids...)
	}
	if params.SortBy != "" || params.SortOrder != "" {
		sortBy, sortOrder := params.SortBy, params.SortOrder
		if sortBy == "" {
			sortBy = "created_at"
		}
		if sortOrder == "" {
			sortOrder = "desc"
		}
		b.WithSort(sortBy, sortOrder)
	}
	if params.PageSize > 0 {
		page := max(params.PageNumber, 1)
		b.WithPagination(order.Pagination{PageSize: params.PageSize, PageNumber: page})
	}

	return b.Build()
}

// splitValues accepts both repeated parameters and comma separated lists.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
