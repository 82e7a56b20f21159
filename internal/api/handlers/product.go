package handlers

import (
	"net/http"

	"ticketpix/internal/api/domain/product"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service *product.ProductService
}

func NewProductHandler(s *product.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// List returns active products, newest first.
func (h *ProductHandler) List(c *gin.Context) {
	res, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Search matches active products by name and description.
func (h *ProductHandler) Search(c *gin.Context) {
	res, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) GetBySlug(c *gin.Context) {
	res, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AdminList returns every product regardless of status.
func (h *ProductHandler) AdminList(c *gin.Context) {
	res, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) AdminGet(c *gin.Context) {
	id, ok := pathID(c, "product_id", product.ErrNotFound)
	if !ok {
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in product.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in product.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := pathID(c, "product_id", product.ErrNotFound)
	if !ok {
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
