package order

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

const PaymentMethodPIX = "pix"

type Order struct {
	ID            string        `json:"id"`
	ProductID     string        `json:"product_id"`
	ProductName   string        `json:"product_name,omitempty"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	CustomerEmail string        `json:"customer_email"`
	Quantity      int           `json:"quantity"`
	UnitPrice     float64       `json:"unit_price"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod string        `json:"payment_method"`
	PixKey        *string       `json:"pix_key"`
	Notes         *string       `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusPaid      PaymentStatus = "paid"
	StatusCancelled PaymentStatus = "cancelled"
	StatusRefunded  PaymentStatus = "refunded"
)

var AvailableStatuses = []PaymentStatus{StatusPending, StatusPaid, StatusCancelled, StatusRefunded}

func NewPaymentStatus(raw string) (PaymentStatus, error) {
	if slices.Contains(AvailableStatuses, PaymentStatus(raw)) {
		return PaymentStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// NewOrder is a checkout submission. The price is not part of it: it is
// read from the product when the order is created.
type NewOrder struct {
	ProductID     string  `json:"product_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail string  `json:"customer_email"`
	Quantity      int     `json:"quantity"`
	PixKey        *string `json:"pix_key"`
	Notes         *string `json:"notes"`
}

func (n *NewOrder) Validate() error {
	n.CustomerName = strings.TrimSpace(n.CustomerName)
	n.CustomerPhone = strings.TrimSpace(n.CustomerPhone)
	n.CustomerEmail = strings.TrimSpace(n.CustomerEmail)

	switch {
	case n.ProductID == "":
		return fmt.Errorf("%w: product_id is required", ErrValidation)
	case n.CustomerName == "":
		return fmt.Errorf("%w: customer_name is required", ErrValidation)
	case n.CustomerPhone == "":
		return fmt.Errorf("%w: customer_phone is required", ErrValidation)
	case n.CustomerEmail == "":
		return fmt.Errorf("%w: customer_email is required", ErrValidation)
	case n.Quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	return nil
}

// Total returns unit price times quantity rounded to centavos.
func Total(unitPrice float64, quantity int) float64 {
	return math.Round(unitPrice*float64(quantity)*100) / 100
}

type Pagination struct {
	PageSize   int
	PageNumber int
}

type OrdersQuery struct {
	IDs        []string
	ProductIDs []string
	Statuses   []PaymentStatus
	Pagination *Pagination
	SortBy     string
	SortOrder  string
}

func (o *OrdersQuery) Validate() error {
	if o.SortBy != "created_at" && o.SortBy != "updated_at" {
		return fmt.Errorf("invalid sort by: %s", o.SortBy)
	}
	if o.SortOrder != "asc" && o.SortOrder != "desc" {
		return fmt.Errorf("invalid sort order: %s", o.SortOrder)
	}
	if o.Pagination != nil && (o.Pagination.PageSize < 1 || o.Pagination.PageNumber < 1) {
		return fmt.Errorf("invalid pagination: size=%d page=%d", o.Pagination.PageSize, o.Pagination.PageNumber)
	}
	return nil
}

type OrdersQueryBuilder struct {
	query *OrdersQuery
}

func NewOrdersQueryBuilder() *OrdersQueryBuilder {
	return &OrdersQueryBuilder{
		query: &OrdersQuery{SortBy: "created_at", SortOrder: "desc"},
	}
}

func (b *OrdersQueryBuilder) Build() (*OrdersQuery, error) {
	if err := b.query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}
	return b.query, nil
}

func (b *OrdersQueryBuilder) WithIDs(ids ...string) *OrdersQueryBuilder {
	b.query.IDs = ids
	return b
}

func (b *OrdersQueryBuilder) WithProductIDs(productIDs ...string) *OrdersQueryBuilder {
	b.query.ProductIDs = productIDs
	return b
}

func (b *OrdersQueryBuilder) WithStatuses(statuses ...PaymentStatus) *OrdersQueryBuilder {
	b.query.Statuses = statuses
	return b
}

func (b *OrdersQueryBuilder) WithSort(sortBy, sortOrder string) *OrdersQueryBuilder {
	b.query.SortBy = sortBy
	b.query.SortOrder = sortOrder
	return b
}

func (b *OrdersQueryBuilder) WithPagination(pagination Pagination) *OrdersQueryBuilder {
	b.query.Pagination = &pagination
	return b
}

// Stats summarises the admin dashboard.
type Stats struct {
	TotalProducts int     `json:"total_products"`
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	PendingOrders int     `json:"pending_orders"`
}
