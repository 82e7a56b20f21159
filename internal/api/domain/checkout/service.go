package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ticketpix/internal/api/domain/pix"
	"ticketpix/pkg/metrics"
)

type Config struct {
	MaxAmount          float64
	DefaultMaxQuantity int
	// CompanyPixKey receives ticket payments.
	CompanyPixKey string
}

type Service struct {
	store     SessionStore
	products  ProductFinder
	generator *pix.Generator
	cfg       Config

	transfer *Wizard[TransferForm]
	ticket   *Wizard[TicketForm]

	now   func() time.Time
	newID func() string
}

func NewService(store SessionStore, products ProductFinder, orders OrderCreator, generator *pix.Generator, cfg Config) *Service {
	return &Service{
		store:     store,
		products:  products,
		generator: generator,
		cfg:       cfg,
		transfer:  newTransferWizard(cfg.MaxAmount),
		ticket:    newTicketWizard(orders, cfg.CompanyPixKey),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (s *Service) StartTransfer(ctx context.Context) (Session, error) {
	form := newTransferForm()
	return s.start(ctx, Session{Flow: FlowTransfer, Step: s.transfer.First(), Transfer: &form})
}

// StartTicket opens a purchase session for an active product.
func (s *Service) StartTicket(ctx context.Context, slug string) (Session, error) {
	p, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return Session{}, fmt.Errorf("load product: %w", err)
	}

	form := newTicketForm(snapshot(p, s.cfg.DefaultMaxQuantity))
	return s.start(ctx, Session{Flow: FlowTicket, Step: s.ticket.First(), Ticket: &form})
}

func (s *Service) start(ctx context.Context, sess Session) (Session, error) {
	now := s.now()
	sess.ID = s.newID()
	sess.CreatedAt = now
	sess.UpdatedAt = now

	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	record(sess.Flow, "start", nil)
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// Update patches the form data of the current step.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}

	next := sess
	switch sess.Flow {
	case FlowTransfer:
		if !s.transfer.Editable(sess.Step) {
			return sess, lockedErr(s.transfer.IsTerminal(sess.Step))
		}
		form := *sess.Transfer
		if err := form.apply(patch); err != nil {
			return sess, err
		}
		next.Transfer = &form
	case FlowTicket:
		if !s.ticket.Editable(sess.Step) {
			return sess, lockedErr(s.ticket.IsTerminal(sess.Step))
		}
		form := *sess.Ticket
		if err := form.apply(patch); err != nil {
			return sess, err
		}
		next.Ticket = &form
	default:
		return sess, fmt.Errorf("%w: flow %q", ErrUnknownStep, sess.Flow)
	}

	return s.save(ctx, next)
}

// Next moves the session forward. On failure the stored session keeps its step
// and is returned alongside the error; an order created on the way is kept on it.
func (s *Service) Next(ctx context.Context, id string) (Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}

	next := sess
	switch sess.Flow {
	case FlowTransfer:
		form := *sess.Transfer
		next.Step, err = s.transfer.Next(ctx, sess.Step, &form)
		next.Transfer = &form
	case FlowTicket:
		form := *sess.Ticket
		next.Step, err = s.ticket.Next(ctx, sess.Step, &form)
		next.Ticket = &form
	default:
		err = fmt.Errorf("%w: flow %q", ErrUnknownStep, sess.Flow)
	}
	record(sess.Flow, "next", err)
	if err != nil {
		if !errors.Is(err, ErrValidation) && !errors.Is(err, ErrTerminalStep) {
			slog.WarnContext(ctx, "Checkout step failed",
				"session_id", sess.ID,
				"flow", sess.Flow,
				"step", sess.Step,
				slog.Any("error", err))
		}
		return sess, err
	}

	saved, err := s.save(ctx, next)
	if err != nil {
		if held, ok := s.holdOrder(ctx, sess, next); ok {
			return held, err
		}
		return sess, err
	}
	return saved, nil
}

// holdOrder keeps the step unchanged but records an order created while
// leaving it, so a retried Next reuses the order instead of creating another.
func (s *Service) holdOrder(ctx context.Context, sess, next Session) (Session, bool) {
	if sess.Flow != FlowTicket || next.Ticket.OrderID == "" || next.Ticket.OrderID == sess.Ticket.OrderID {
		return Session{}, false
	}

	held := sess
	form := *sess.Ticket
	form.OrderID = next.Ticket.OrderID
	form.TotalAmount = next.Ticket.TotalAmount
	held.Ticket = &form

	saved, err := s.save(ctx, held)
	if err != nil {
		slog.ErrorContext(ctx, "Order created but checkout session not saved",
			"session_id", sess.ID,
			"order_id", form.OrderID,
			slog.Any("error", err))
		return Session{}, false
	}
	return saved, true
}

func (s *Service) Back(ctx context.Context, id string) (Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}

	next := sess
	switch sess.Flow {
	case FlowTransfer:
		next.Step, err = s.transfer.Back(sess.Step)
	case FlowTicket:
		next.Step, err = s.ticket.Back(sess.Step)
	default:
		err = fmt.Errorf("%w: flow %q", ErrUnknownStep, sess.Flow)
	}
	record(sess.Flow, "back", err)
	if err != nil {
		return sess, err
	}
	if next.Step == sess.Step {
		return sess, nil
	}
	return s.save(ctx, next)
}

// Reset returns the session to its first step with empty form data. A ticket
// session keeps its product.
func (s *Service) Reset(ctx context.Context, id string) (Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}

	next := sess
	switch sess.Flow {
	case FlowTransfer:
		form := newTransferForm()
		next.Step = s.transfer.First()
		next.Transfer = &form
	case FlowTicket:
		form := newTicketForm(sess.Ticket.Product)
		next.Step = s.ticket.First()
		next.Ticket = &form
	default:
		return sess, fmt.Errorf("%w: flow %q", ErrUnknownStep, sess.Flow)
	}
	record(sess.Flow, "reset", nil)
	return s.save(ctx, next)
}

func (s *Service) Abandon(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Payload returns the PIX codes for the session once the payment details are
// settled: from confirmation on for transfers, from payment on for tickets.
func (s *Service) Payload(ctx context.Context, id string) (pix.Payload, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return pix.Payload{}, err
	}

	switch sess.Flow {
	case FlowTransfer:
		if !s.transfer.Reached(sess.Step, StepConfirmation) {
			return pix.Payload{}, ErrPayloadUnavailable
		}
		return s.generator.Generate(sess.Transfer.PaymentData), nil
	case FlowTicket:
		if !s.ticket.Reached(sess.Step, StepPayment) {
			return pix.Payload{}, ErrPayloadUnavailable
		}
		return s.generator.Generate(s.ticketPayment(*sess.Ticket)), nil
	}
	return pix.Payload{}, fmt.Errorf("%w: flow %q", ErrUnknownStep, sess.Flow)
}

func (s *Service) ticketPayment(f TicketForm) pix.PaymentData {
	recipientType := pix.RecipientKey
	if kind, ok := pix.ClassifyKey(s.cfg.CompanyPixKey); ok {
		recipientType = kind.RecipientType()
	}
	return pix.PaymentData{
		RecipientType: recipientType,
		Recipient:     s.cfg.CompanyPixKey,
		Amount:        pix.DecimalAmount(f.TotalAmount),
		Description:   f.Product.Name,
	}
}

func (s *Service) save(ctx context.Context, sess Session) (Session, error) {
	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func lockedErr(terminal bool) error {
	if terminal {
		return ErrTerminalStep
	}
	return ErrStepLocked
}

func record(flow Flow, action string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrValidation), errors.Is(err, ErrTerminalStep):
		result = "rejected"
	default:
		result = "failed"
	}
	metrics.CheckoutTransitions.WithLabelValues(string(flow), action, result).Inc()
}
