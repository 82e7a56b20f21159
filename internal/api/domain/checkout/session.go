package checkout

import (
	"context"
	"time"

	"ticketpix/internal/api/domain/pix"
)

//go:generate mockgen -source session.go -destination mock_session.go -package checkout

type Flow string

const (
	FlowTransfer Flow = "transfer"
	FlowTicket   Flow = "ticket"
)

// Session is one customer's progress through a checkout flow. Exactly one of
// Transfer and Ticket is set, matching Flow.
type Session struct {
	ID        string        `json:"id"`
	Flow      Flow          `json:"flow"`
	Step      Step          `json:"step"`
	Transfer  *TransferForm `json:"transfer,omitempty"`
	Ticket    *TicketForm   `json:"ticket,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Patch carries the fields a customer fills in. Nil fields are left alone.
type Patch struct {
	RecipientType *pix.RecipientType `json:"recipient_type"`
	Recipient     *string            `json:"recipient"`
	Amount        *string            `json:"amount"`
	Description   *string            `json:"description"`

	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	CustomerEmail *string `json:"customer_email"`
	Quantity      *int    `json:"quantity"`
	Notes         *string `json:"notes"`
}

func (p Patch) hasTransferFields() bool {
	return p.RecipientType != nil || p.Recipient != nil || p.Amount != nil || p.Description != nil
}

func (p Patch) hasTicketFields() bool {
	return p.CustomerName != nil || p.CustomerPhone != nil || p.CustomerEmail != nil || p.Quantity != nil || p.Notes != nil
}

type SessionStore interface {
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}
