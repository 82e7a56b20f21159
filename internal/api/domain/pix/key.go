package pix

import "regexp"

// RecipientType is what the payer picked as the kind of PIX key.
type RecipientType string

const (
	RecipientCPF   RecipientType = "cpf"
	RecipientPhone RecipientType = "phone"
	RecipientEmail RecipientType = "email"
	RecipientKey   RecipientType = "key"
)

var RecipientTypes = []RecipientType{RecipientCPF, RecipientPhone, RecipientEmail, RecipientKey}

func (t RecipientType) Valid() bool {
	switch t {
	case RecipientCPF, RecipientPhone, RecipientEmail, RecipientKey:
		return true
	}
	return false
}

// KeyKind is the format a key string was recognised as.
type KeyKind string

const (
	KeyEmail  KeyKind = "email"
	KeyPhone  KeyKind = "phone"
	KeyCPF    KeyKind = "cpf"
	KeyCNPJ   KeyKind = "cnpj"
	KeyRandom KeyKind = "random"
)

func (k KeyKind) RecipientType() RecipientType {
	switch k {
	case KeyEmail:
		return RecipientEmail
	case KeyPhone:
		return RecipientPhone
	case KeyCPF:
		return RecipientCPF
	default:
		return RecipientKey
	}
}

var (
	emailKey  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneKey  = regexp.MustCompile(`^\+?55\d{10,11}$`)
	cpfKey    = regexp.MustCompile(`^\d{11}$`)
	cnpjKey   = regexp.MustCompile(`^\d{14}$`)
	randomKey = regexp.MustCompile(`(?i)^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
)

// ClassifyKey returns the first format the key matches, checked in the order
// email, phone, CPF, CNPJ, random key. Phone, CPF and CNPJ are matched on the
// digits of the key only; no check digits are verified.
func ClassifyKey(key string) (KeyKind, bool) {
	digits := nonDigit.ReplaceAllString(key, "")

	switch {
	case emailKey.MatchString(key):
		return KeyEmail, true
	case phoneKey.MatchString(digits):
		return KeyPhone, true
	case cpfKey.MatchString(digits):
		return KeyCPF, true
	case cnpjKey.MatchString(digits):
		return KeyCNPJ, true
	case randomKey.MatchString(key):
		return KeyRandom, true
	}
	return "", false
}

func IsValidKey(key string) bool {
	_, ok := ClassifyKey(key)
	return ok
}
