package checkout

import (
	"errors"
	"fmt"
	"strings"

	"ticketpix/internal/api/domain/pix"
)

const (
	StepRecipient    Step = "recipient"
	StepAmount       Step = "amount"
	StepConfirmation Step = "confirmation"
)

// TransferForm is the data collected by the standalone PIX transfer flow.
type TransferForm struct {
	pix.PaymentData
}

func newTransferForm() TransferForm {
	return TransferForm{PaymentData: pix.PaymentData{RecipientType: pix.RecipientCPF}}
}

func newTransferWizard(maxAmount float64) *Wizard[TransferForm] {
	return NewWizard(
		StepSpec[TransferForm]{
			Name:     StepRecipient,
			Editable: true,
			Guard: func(f TransferForm) error {
				if strings.TrimSpace(f.Recipient) == "" {
					return errors.New("recipient is required")
				}
				return nil
			},
		},
		StepSpec[TransferForm]{
			Name:     StepAmount,
			Editable: true,
			Guard: func(f TransferForm) error {
				if !pix.ValidateAmount(f.Amount, maxAmount) {
					return fmt.Errorf("amount must be above zero and at most %s", pix.FormatBRL(maxAmount))
				}
				return nil
			},
		},
		StepSpec[TransferForm]{Name: StepConfirmation},
		StepSpec[TransferForm]{Name: StepSuccess},
	)
}

func (f *TransferForm) apply(p Patch) error {
	if p.hasTicketFields() {
		return ErrFlowMismatch
	}

	if p.RecipientType != nil && *p.RecipientType != f.RecipientType {
		if !p.RecipientType.Valid() {
			return fmt.Errorf("%w: unknown recipient type %q", ErrValidation, *p.RecipientType)
		}
		f.RecipientType = *p.RecipientType
		f.Recipient = ""
	}
	if p.Recipient != nil {
		f.Recipient = *p.Recipient
	}
	if p.Amount != nil {
		f.Amount = pix.FormatCurrency(*p.Amount)
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	return nil
}
