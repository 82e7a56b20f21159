// Package pix holds the BRL amount formatting, PIX key validation and the
// placeholder PIX payloads shown at checkout. None of it speaks the real PIX
// protocol: payloads are visual stand-ins and keys are checked by shape only.
package pix

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxAmount is the transfer ceiling in reais.
const DefaultMaxAmount = 10000.0

const currencyPrefix = "R$ "

var (
	nonDigit     = regexp.MustCompile(`\D`)
	nonAmount    = regexp.MustCompile(`[^\d,]`)
	leadingFloat = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)`)
)

// FormatCurrency treats the digits of raw as a number of centavos and renders
// it as pt-BR currency text: "1234" -> "R$ 12,34". Input without digits
// renders as "".
func FormatCurrency(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}

	digits = strings.TrimLeft(digits, "0")
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}

	reais, centavos := digits[:len(digits)-2], digits[len(digits)-2:]
	return currencyPrefix + groupThousands(reais) + "," + centavos
}

// FormatBRL renders an amount in reais, rounded to centavos.
func FormatBRL(v float64) string {
	cents := int64(math.Round(v * 100))
	if cents < 0 {
		return "-" + FormatCurrency(strconv.FormatInt(-cents, 10))
	}
	return FormatCurrency(strconv.FormatInt(cents, 10))
}

// ParseCurrency reads a value produced by FormatCurrency back into reais.
// Anything that is not a number yields 0.
func ParseCurrency(display string) float64 {
	cleaned := nonAmount.ReplaceAllString(display, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	num := leadingFloat.FindString(cleaned)
	if num == "" {
		return 0
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return v
}

// ValidateAmount reports whether the displayed amount is positive and within max.
func ValidateAmount(display string, max float64) bool {
	v := ParseCurrency(display)
	return v > 0 && v <= max
}

// DecimalAmount renders reais with a dot separator and no trailing zeros, the
// way amounts are interpolated into the copy-paste code ("100", "50.5").
func DecimalAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
