package pix

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

const (
	copyPasteHeader = "00020126580014BR.GOV.BCB.PIX0136"
	copyPasteFooter = "6008BRASILIA62070503***6304"
)

// PaymentData is the transfer being described by a payload.
type PaymentData struct {
	RecipientType RecipientType `json:"recipient_type"`
	Recipient     string        `json:"recipient"`
	Amount        string        `json:"amount"`
	Description   string        `json:"description"`
}

type Payload struct {
	QRCode    string `json:"qr_code"`
	CopyPaste string `json:"copy_paste"`
}

// BuildQRPayload encodes the transfer as base64("PIX|recipient|amount|description").
// It is a placeholder for a QR image, not an EMV payload.
func BuildQRPayload(data PaymentData) string {
	raw := strings.Join([]string{"PIX", data.Recipient, data.Amount, data.Description}, "|")
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

type Generator struct {
	suffix func() string
}

type GeneratorOption func(*Generator)

// WithSuffix replaces the random 4-character checksum stand-in.
func WithSuffix(fn func() string) GeneratorOption {
	return func(g *Generator) {
		g.suffix = fn
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{suffix: randomSuffix}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildCopyPasteCode lays the transfer out in the shape of a BR Code. The
// trailing CRC field holds 4 random characters, so real PIX readers reject it.
func (g *Generator) BuildCopyPasteCode(data PaymentData) string {
	var b strings.Builder
	b.WriteString(copyPasteHeader)
	b.WriteString(data.Recipient)
	b.WriteString("52040000530398654")
	b.WriteString(strings.Replace(data.Amount, ".", "", 1))
	b.WriteString("5802BR5909")
	b.WriteString(data.Description)
	b.WriteString(copyPasteFooter)
	b.WriteString(g.suffix())
	return b.String()
}

func (g *Generator) Generate(data PaymentData) Payload {
	return Payload{
		QRCode:    BuildQRPayload(data),
		CopyPaste: g.BuildCopyPasteCode(data),
	}
}

func randomSuffix() string {
	return strings.ToUpper(uuid.NewString()[:4])
}
