package checkout

import (
	"context"
	"fmt"
	"slices"
)

type Step string

// StepSpec describes one wizard step over form data T.
type StepSpec[T any] struct {
	Name Step
	// Editable steps accept patches to the form data.
	Editable bool
	// Guard must pass before leaving the step.
	Guard func(data T) error
	// OnLeave runs after the guard when moving forward. If it fails the
	// wizard stays on the step and the data is left as it was.
	OnLeave func(ctx context.Context, data *T) error
}

// Wizard is an ordered list of steps. It holds no per-session state: callers
// pass the current step and data in and persist what comes back.
type Wizard[T any] struct {
	steps []StepSpec[T]
}

func NewWizard[T any](steps ...StepSpec[T]) *Wizard[T] {
	if len(steps) == 0 {
		panic("checkout: wizard needs at least one step")
	}
	return &Wizard[T]{steps: steps}
}

func (w *Wizard[T]) First() Step {
	return w.steps[0].Name
}

func (w *Wizard[T]) Steps() []Step {
	out := make([]Step, len(w.steps))
	for i, s := range w.steps {
		out[i] = s.Name
	}
	return out
}

func (w *Wizard[T]) IsTerminal(step Step) bool {
	return step == w.steps[len(w.steps)-1].Name
}

// Reached reports whether current is at or after target.
func (w *Wizard[T]) Reached(current, target Step) bool {
	ci := slices.Index(w.Steps(), current)
	ti := slices.Index(w.Steps(), target)
	return ci >= 0 && ti >= 0 && ci >= ti
}

func (w *Wizard[T]) Editable(step Step) bool {
	i, err := w.indexOf(step)
	return err == nil && w.steps[i].Editable
}

// Next validates the current step, runs its leave effect and returns the
// following step.
func (w *Wizard[T]) Next(ctx context.Context, current Step, data *T) (Step, error) {
	i, err := w.indexOf(current)
	if err != nil {
		return current, err
	}
	if i == len(w.steps)-1 {
		return current, ErrTerminalStep
	}

	spec := w.steps[i]
	if spec.Guard != nil {
		if err := spec.Guard(*data); err != nil {
			return current, fmt.Errorf("%w: %s", ErrValidation, err.Error())
		}
	}

	if spec.OnLeave != nil {
		draft := *data
		if err := spec.OnLeave(ctx, &draft); err != nil {
			return current, err
		}
		*data = draft
	}

	return w.steps[i+1].Name, nil
}

// Back returns the previous step. On the first step it stays put. Data is
// never cleared.
func (w *Wizard[T]) Back(current Step) (Step, error) {
	i, err := w.indexOf(current)
	if err != nil {
		return current, err
	}
	if i == 0 {
		return current, nil
	}
	return w.steps[i-1].Name, nil
}

func (w *Wizard[T]) indexOf(step Step) (int, error) {
	for i, s := range w.steps {
		if s.Name == step {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, step)
}
