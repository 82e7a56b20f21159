package handlers

import (
	"context"
	"net/http"
	"testing"

	"ticketpix/internal/api/domain/product"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func productEngine(t *testing.T) (*gin.Engine, *product.MockProductRepo) {
	t.Helper()

	repo := product.NewMockProductRepo(gomock.NewController(t))
	h := NewProductHandler(product.NewProductService(repo, nil))

	return newEngine(func(e *gin.Engine) {
		e.GET("/products", h.List)
		e.GET("/products/search", h.Search)
		e.GET("/products/:slug", h.GetBySlug)
		e.GET("/admin/products/:product_id", h.AdminGet)
		e.POST("/admin/products", h.Create)
		e.PUT("/admin/products/:product_id", h.Update)
	}), repo
}

func TestProductHandler_List(t *testing.T) {
	e, repo := productEngine(t)

	repo.EXPECT().GetProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q *product.ProductsQuery) ([]product.Product, error) {
			assert.Equal(t, []product.Status{product.StatusActive}, q.Statuses)
			return []product.Product{{ID: "p-1", Name: "Rock Night", Slug: "rock-night", Status: product.StatusActive}}, nil
		})

	rec := doJSON(t, e, http.MethodGet, "/products", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]product.Product](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "rock-night", got[0].Slug)
}

func TestProductHandler_GetBySlug_NotFound(t *testing.T) {
	e, repo := productEngine(t)

	repo.EXPECT().GetProducts(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := doJSON(t, e, http.MethodGet, "/products/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, product.ErrNotFound.Error(), decode[messageBody](t, rec).Message)
}

func TestProductHandler_MalformedID(t *testing.T) {
	e, _ := productEngine(t)

	get := doJSON(t, e, http.MethodGet, "/admin/products/abc", nil)
	put := doJSON(t, e, http.MethodPut, "/admin/products/abc", gin.H{"name": "Show", "price": 50})

	assert.Equal(t, http.StatusNotFound, get.Code)
	assert.Equal(t, product.ErrNotFound.Error(), decode[messageBody](t, get).Message)
	assert.Equal(t, http.StatusNotFound, put.Code)
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("creates with a generated slug", func(t *testing.T) {
		e, repo := productEngine(t)

		repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p product.Product) error {
				assert.Equal(t, "show-de-verao", p.Slug)
				return nil
			})

		rec := doJSON(t, e, http.MethodPost, "/admin/products", gin.H{"name": "Show de Verão", "price": 80})

		require.Equal(t, http.StatusCreated, rec.Code)
		got := decode[product.Product](t, rec)
		assert.Equal(t, "show-de-verao", got.Slug)
		assert.Equal(t, product.StatusActive, got.Status)
	})

	t.Run("rejects a missing price", func(t *testing.T) {
		e, _ := productEngine(t)

		rec := doJSON(t, e, http.MethodPost, "/admin/products", gin.H{"name": "Show"})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		e, repo := productEngine(t)

		repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(product.ErrSlugTaken)

		rec := doJSON(t, e, http.MethodPost, "/admin/products", gin.H{"name": "Show", "price": 10})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		e, _ := productEngine(t)

		rec := doJSON(t, e, http.MethodPost, "/admin/products", gin.H{"price": "ten"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
