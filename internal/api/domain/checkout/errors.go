package checkout

import "errors"

var (
	// ErrValidation is returned when the current step's data does not allow moving on
	ErrValidation = errors.New("checkout step is incomplete")

	ErrTerminalStep = errors.New("checkout is already complete")

	// ErrStepLocked is returned when patching data on a step that does not collect it
	ErrStepLocked = errors.New("step does not accept changes")

	ErrUnknownStep = errors.New("unknown checkout step")

	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrFlowMismatch is returned when a patch carries fields of the other flow
	ErrFlowMismatch = errors.New("field does not belong to this checkout flow")

	// ErrPayloadUnavailable is returned when asking for PIX codes before the
	// payment details are settled
	ErrPayloadUnavailable = errors.New("pix payload not available at this step")
)
