package handlers

import (
	"net/http"

	"ticketpix/internal/api/domain/pix"

	"github.com/gin-gonic/gin"
)

// PixHandler exposes the PIX helpers used by storefront forms.
type PixHandler struct {
	generator *pix.Generator
	maxAmount float64
}

func NewPixHandler(g *pix.Generator, maxAmount float64) *PixHandler {
	return &PixHandler{generator: g, maxAmount: maxAmount}
}

type ValidateKeyRequest struct {
	Key string `json:"key"`
}

type ValidateKeyResponse struct {
	Valid bool        `json:"valid"`
	Kind  pix.KeyKind `json:"type,omitempty"`
}

func (h *PixHandler) ValidateKey(c *gin.Context) {
	var req ValidateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	kind, ok := pix.ClassifyKey(req.Key)
	c.JSON(http.StatusOK, ValidateKeyResponse{Valid: ok, Kind: kind})
}

type FormatAmountRequest struct {
	Raw string `json:"raw"`
}

type FormatAmountResponse struct {
	Formatted string  `json:"formatted"`
	Value     float64 `json:"value"`
	Valid     bool    `json:"valid"`
}

// FormatAmount renders typed digits as a BRL amount and checks it against
// the transfer ceiling.
func (h *PixHandler) FormatAmount(c *gin.Context) {
	var req FormatAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	formatted := pix.FormatCurrency(req.Raw)
	c.JSON(http.StatusOK, FormatAmountResponse{
		Formatted: formatted,
		Value:     pix.ParseCurrency(formatted),
		Valid:     pix.ValidateAmount(formatted, h.maxAmount),
	})
}

func (h *PixHandler) Payload(c *gin.Context) {
	var data pix.PaymentData
	if err := c.ShouldBindJSON(&data); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.generator.Generate(data))
}
