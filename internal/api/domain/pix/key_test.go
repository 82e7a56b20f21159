package pix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKey(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		key       string
		kind      KeyKind
		recipient RecipientType
		valid     bool
	}{
		{name: "email", key: "user@example.com", kind: KeyEmail, recipient: RecipientEmail, valid: true},
		{name: "phone with country code", key: "+5511999998888", kind: KeyPhone, recipient: RecipientPhone, valid: true},
		{name: "formatted phone", key: "+55 (11) 99999-8888", kind: KeyPhone, recipient: RecipientPhone, valid: true},
		{name: "landline with country code", key: "551133334444", kind: KeyPhone, recipient: RecipientPhone, valid: true},
		{name: "11 digits is a cpf", key: "11999998888", kind: KeyCPF, recipient: RecipientCPF, valid: true},
		{name: "formatted cpf", key: "123.456.789-09", kind: KeyCPF, recipient: RecipientCPF, valid: true},
		{name: "cnpj", key: "12345678000195", kind: KeyCNPJ, recipient: RecipientKey, valid: true},
		{name: "formatted cnpj", key: "12.345.678/0001-95", kind: KeyCNPJ, recipient: RecipientKey, valid: true},
		{name: "random key", key: "123e4567-e89b-12d3-a456-426614174000", kind: KeyRandom, recipient: RecipientKey, valid: true},
		{name: "upper case random key", key: "123E4567-E89B-12D3-A456-426614174000", kind: KeyRandom, recipient: RecipientKey, valid: true},
		{name: "plain text", key: "abc", valid: false},
		{name: "empty", key: "", valid: false},
		{name: "email without domain dot", key: "user@example", valid: false},
		{name: "10 digits", key: "1234567890", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := ClassifyKey(tc.key)

			assert.Equal(t, tc.valid, ok)
			assert.Equal(t, tc.valid, IsValidKey(tc.key))
			if tc.valid {
				assert.Equal(t, tc.kind, kind)
				assert.Equal(t, tc.recipient, kind.RecipientType())
			}
		})
	}
}

func TestRecipientType_Valid(t *testing.T) {
	t.Parallel()

	for _, rt := range RecipientTypes {
		assert.True(t, rt.Valid(), rt)
	}
	assert.False(t, RecipientType("cnpj").Valid())
	assert.False(t, RecipientType("").Valid())
}
