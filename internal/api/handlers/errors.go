package handlers

import (
	"errors"
	"net/http"

	"ticketpix/internal/api/domain/checkout"
	"ticketpix/internal/api/domain/order"
	"ticketpix/internal/api/domain/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, checkout.ErrSessionNotFound):
		return http.StatusNotFound

	case errors.Is(err, product.ErrInvalidQuery),
		errors.Is(err, order.ErrInvalidQuery):
		return http.StatusBadRequest

	case errors.Is(err, product.ErrValidation),
		errors.Is(err, product.ErrInvalidStatus),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, checkout.ErrValidation),
		errors.Is(err, checkout.ErrFlowMismatch):
		return http.StatusUnprocessableEntity

	case errors.Is(err, product.ErrSlugTaken),
		errors.Is(err, order.ErrProductUnavailable),
		errors.Is(err, order.ErrCapacityExceeded),
		errors.Is(err, checkout.ErrTerminalStep),
		errors.Is(err, checkout.ErrStepLocked),
		errors.Is(err, checkout.ErrPayloadUnavailable):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"message": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
}

// pathID reads a UUID path parameter. A malformed id cannot match any row, so
// it is answered with notFound without reaching the database.
func pathID(c *gin.Context, name string, notFound error) (string, bool) {
	id := c.Param(name)
	if err := uuid.Validate(id); err != nil {
		respondError(c, notFound)
		return "", false
	}
	return id, true
}
