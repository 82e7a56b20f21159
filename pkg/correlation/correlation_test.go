package correlation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsure(t *testing.T) {
	t.Run("keeps existing id", func(t *testing.T) {
		ctx := WithID(context.Background(), "abc")

		got, id := Ensure(ctx)

		assert.Equal(t, "abc", id)
		assert.Equal(t, "abc", FromContext(got))
	})

	t.Run("generates id when missing", func(t *testing.T) {
		got, id := Ensure(context.Background())

		assert.NotEmpty(t, id)
		assert.Equal(t, id, FromContext(got))
	})
}
