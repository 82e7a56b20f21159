package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CheckAll(t *testing.T) {
	up := NewCheckFunc("postgres", func(context.Context) error { return nil })
	down := NewCheckFunc("redis", func(context.Context) error { return errors.New("connection refused") })

	t.Run("empty registry is up", func(t *testing.T) {
		res := NewRegistry().CheckAll(context.Background())
		assert.Equal(t, StatusUp, res.Status)
		assert.Empty(t, res.Checks)
	})

	t.Run("all up", func(t *testing.T) {
		res := NewRegistry(up).CheckAll(context.Background())
		assert.Equal(t, StatusUp, res.Status)
		require.Len(t, res.Checks, 1)
		assert.Equal(t, "postgres", res.Checks[0].Name)
	})

	t.Run("one down makes registry down", func(t *testing.T) {
		r := NewRegistry(up)
		r.Register(down)

		res := r.CheckAll(context.Background())

		assert.Equal(t, StatusDown, res.Status)
		require.Len(t, res.Checks, 2)
		assert.Equal(t, StatusDown, res.Checks[1].Status)
		assert.Equal(t, "connection refused", res.Checks[1].Message)
	})
}

func TestReadinessHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/health/ready", ReadinessHandler(NewRegistry(
		NewCheckFunc("redis", func(context.Context) error { return errors.New("down") }),
	), DefaultTimeout))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatusDown, body.Status)
}
