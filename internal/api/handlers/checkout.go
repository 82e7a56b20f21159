package handlers

import (
	"errors"
	"net/http"

	"ticketpix/internal/api/domain/checkout"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(s *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

func (h *CheckoutHandler) StartTransfer(c *gin.Context) {
	sess, err := h.service.StartTransfer(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

type StartTicketRequest struct {
	ProductSlug string `json:"product_slug" binding:"required"`
}

func (h *CheckoutHandler) StartTicket(c *gin.Context) {
	var req StartTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.service.StartTicket(c.Request.Context(), req.ProductSlug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	sess, err := h.service.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *CheckoutHandler) Update(c *gin.Context) {
	var patch checkout.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.service.Update(c.Request.Context(), c.Param("session_id"), patch)
	if err != nil {
		respondTransitionError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *CheckoutHandler) Next(c *gin.Context) {
	sess, err := h.service.Next(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondTransitionError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *CheckoutHandler) Back(c *gin.Context) {
	sess, err := h.service.Back(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondTransitionError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *CheckoutHandler) Reset(c *gin.Context) {
	sess, err := h.service.Reset(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondTransitionError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *CheckoutHandler) Abandon(c *gin.Context) {
	if err := h.service.Abandon(c.Request.Context(), c.Param("session_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) Payload(c *gin.Context) {
	res, err := h.service.Payload(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// respondTransitionError includes the unchanged session so the client can
// redraw the step it is still on.
func respondTransitionError(c *gin.Context, sess checkout.Session, err error) {
	if sess.ID == "" || errors.Is(err, checkout.ErrSessionNotFound) {
		respondError(c, err)
		return
	}
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"message": err.Error(), "session": sess})
}
