package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		digits   string
		expected string
	}{
		{"empty", "", ""},
		{"first group verbatim", "1234", "1234"},
		{"middle positions masked", "12345678", "1234 ****"},
		{"full number", "4242424242424242", "4242 **** **** 4242"},
		{"partial final group", "42424242424242", "4242 **** **** 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskCardNumber(tt.digits))
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12/"},
		{"1234", "12/34"},
		{"12/34", "12/34"},
		{"123456", "12/34"},
		{"1a2b", "12/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatExpiry(tt.input), "input=%q", tt.input)
	}
}

func TestSanitizeCardDigits(t *testing.T) {
	assert.Equal(t, "4242424242424242", SanitizeCardDigits("4242 4242 4242 4242"))
	assert.Equal(t, "4242424242424242", SanitizeCardDigits("42424242424242421111"))
	assert.Equal(t, "", SanitizeCardDigits("abc"))
}

func TestNewCardDraft_Valid(t *testing.T) {
	tests := []struct {
		name     string
		draft    NewCardDraft
		expected bool
	}{
		{
			name:     "complete draft",
			draft:    NewCardDraft{Number: "4242424242424242", Name: "TEST USER", Expiry: "12/27"},
			expected: true,
		},
		{
			name:     "short number",
			draft:    NewCardDraft{Number: "42424242", Name: "TEST USER", Expiry: "12/27"},
			expected: false,
		},
		{
			name:     "blank name",
			draft:    NewCardDraft{Number: "4242424242424242", Name: "   ", Expiry: "12/27"},
			expected: false,
		},
		{
			name:     "partial expiry",
			draft:    NewCardDraft{Number: "4242424242424242", Name: "TEST USER", Expiry: "12/"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.draft.Valid())
		})
	}
}

func TestLastFour(t *testing.T) {
	assert.Equal(t, "4242", LastFour("4242424242424242"))
	assert.Equal(t, "42", LastFour("42"))
}
