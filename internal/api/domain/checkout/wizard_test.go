package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterForm struct {
	Value   int
	Touched bool
}

func counterWizard(leave func(ctx context.Context, f *counterForm) error) *Wizard[counterForm] {
	return NewWizard(
		StepSpec[counterForm]{
			Name:     "first",
			Editable: true,
			Guard: func(f counterForm) error {
				if f.Value <= 0 {
					return errors.New("value must be positive")
				}
				return nil
			},
			OnLeave: leave,
		},
		StepSpec[counterForm]{Name: "second"},
		StepSpec[counterForm]{Name: "done"},
	)
}

func TestWizard_Next(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("should reject when guard fails and keep the step", func(t *testing.T) {
		w := counterWizard(nil)
		data := counterForm{}

		step, err := w.Next(ctx, "first", &data)

		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorContains(t, err, "value must be positive")
		assert.Equal(t, Step("first"), step)
	})

	t.Run("should run leave effect and advance", func(t *testing.T) {
		w := counterWizard(func(_ context.Context, f *counterForm) error {
			f.Touched = true
			return nil
		})
		data := counterForm{Value: 1}

		step, err := w.Next(ctx, "first", &data)

		require.NoError(t, err)
		assert.Equal(t, Step("second"), step)
		assert.True(t, data.Touched)
	})

	t.Run("should keep step and data when effect fails", func(t *testing.T) {
		w := counterWizard(func(_ context.Context, f *counterForm) error {
			f.Touched = true
			return errors.New("store unavailable")
		})
		data := counterForm{Value: 1}

		step, err := w.Next(ctx, "first", &data)

		assert.EqualError(t, err, "store unavailable")
		assert.Equal(t, Step("first"), step)
		assert.False(t, data.Touched)
	})

	t.Run("should refuse to move past the terminal step", func(t *testing.T) {
		w := counterWizard(nil)

		step, err := w.Next(ctx, "done", &counterForm{})

		assert.ErrorIs(t, err, ErrTerminalStep)
		assert.Equal(t, Step("done"), step)
	})

	t.Run("should reject unknown step", func(t *testing.T) {
		w := counterWizard(nil)

		_, err := w.Next(ctx, "nowhere", &counterForm{})

		assert.ErrorIs(t, err, ErrUnknownStep)
	})
}

func TestWizard_Back(t *testing.T) {
	t.Parallel()

	w := counterWizard(nil)

	step, err := w.Back("first")
	require.NoError(t, err)
	assert.Equal(t, Step("first"), step)

	step, err = w.Back("done")
	require.NoError(t, err)
	assert.Equal(t, Step("second"), step)

	_, err = w.Back("nowhere")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestWizard_Introspection(t *testing.T) {
	t.Parallel()

	w := counterWizard(nil)

	assert.Equal(t, Step("first"), w.First())
	assert.Equal(t, []Step{"first", "second", "done"}, w.Steps())
	assert.True(t, w.IsTerminal("done"))
	assert.False(t, w.IsTerminal("second"))
	assert.True(t, w.Editable("first"))
	assert.False(t, w.Editable("second"))
	assert.True(t, w.Reached("done", "second"))
	assert.True(t, w.Reached("second", "second"))
	assert.False(t, w.Reached("first", "second"))
	assert.False(t, w.Reached("nowhere", "first"))
}
