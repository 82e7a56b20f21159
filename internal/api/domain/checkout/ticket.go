package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ticketpix/internal/api/domain/order"
	"ticketpix/internal/api/domain/product"
)

const (
	StepDetails Step = "details"
	StepPayment Step = "payment"
	StepSuccess Step = "success"
)

// ProductSnapshot is the product as it was when the session started.
type ProductSnapshot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       float64 `json:"price"`
	MaxQuantity int     `json:"max_quantity"`
}

// TicketForm is the data collected by the product purchase flow.
type TicketForm struct {
	Product       ProductSnapshot `json:"product"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	Quantity      int             `json:"quantity"`
	Notes         string          `json:"notes"`
	OrderID       string          `json:"order_id,omitempty"`
	TotalAmount   float64         `json:"total_amount"`
}

func newTicketForm(p ProductSnapshot) TicketForm {
	return TicketForm{
		Product:     p,
		Quantity:    1,
		TotalAmount: order.Total(p.Price, 1),
	}
}

func snapshot(p product.Product, defaultMax int) ProductSnapshot {
	maxQty := defaultMax
	if p.MaxQuantity != nil {
		maxQty = *p.MaxQuantity
	}
	return ProductSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Price:       p.Price,
		MaxQuantity: maxQty,
	}
}

func (f TicketForm) validateDetails() error {
	switch {
	case strings.TrimSpace(f.CustomerName) == "":
		return errors.New("customer name is required")
	case strings.TrimSpace(f.CustomerPhone) == "":
		return errors.New("customer phone is required")
	case strings.TrimSpace(f.CustomerEmail) == "":
		return errors.New("customer email is required")
	case f.Quantity < 1 || f.Quantity > f.Product.MaxQuantity:
		return fmt.Errorf("quantity must be between 1 and %d", f.Product.MaxQuantity)
	}
	return nil
}

// newTicketWizard creates the pending order when the customer leaves the
// details step. Moving from payment to success does not mark it paid.
func newTicketWizard(orders OrderCreator, pixKey string) *Wizard[TicketForm] {
	return NewWizard(
		StepSpec[TicketForm]{
			Name:     StepDetails,
			Editable: true,
			Guard:    TicketForm.validateDetails,
			OnLeave: func(ctx context.Context, f *TicketForm) error {
				if f.OrderID != "" {
					return nil
				}

				o, err := orders.CreateOrder(ctx, order.NewOrder{
					ProductID:     f.Product.ID,
					CustomerName:  f.CustomerName,
					CustomerPhone: f.CustomerPhone,
					CustomerEmail: f.CustomerEmail,
					Quantity:      f.Quantity,
					PixKey:        &pixKey,
					Notes:         nilIfBlank(f.Notes),
				})
				if err != nil {
					return fmt.Errorf("create order: %w", err)
				}

				f.OrderID = o.ID
				f.TotalAmount = o.TotalAmount
				return nil
			},
		},
		StepSpec[TicketForm]{Name: StepPayment},
		StepSpec[TicketForm]{Name: StepSuccess},
	)
}

// apply patches customer data. Any change drops the order created from the
// previous details, so the next submission creates a fresh one.
func (f *TicketForm) apply(p Patch) error {
	if p.hasTransferFields() {
		return ErrFlowMismatch
	}

	before := *f
	if p.CustomerName != nil {
		f.CustomerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		f.CustomerPhone = *p.CustomerPhone
	}
	if p.CustomerEmail != nil {
		f.CustomerEmail = *p.CustomerEmail
	}
	if p.Quantity != nil {
		f.Quantity = *p.Quantity
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}

	if *f != before {
		f.OrderID = ""
		f.TotalAmount = order.Total(f.Product.Price, f.Quantity)
	}
	return nil
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
