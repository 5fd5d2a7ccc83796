package domain

import "strings"

// Card input shape: 16 digit PAN, "MM/YY" expiry
const (
	CardNumberLength = 16
	ExpiryLength     = 5
)

// digitsOnly strips every non-digit character
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeCardDigits strips non-digits and truncates to the card number
// length.
func SanitizeCardDigits(input string) string {
	digits := digitsOnly(input)
	if len(digits) > CardNumberLength {
		return digits[:CardNumberLength]
	}
	return digits
}

// MaskCardNumber renders a card number for display: the first and last
// four positions verbatim, positions 4-11 as '*', grouped in blocks of
// four separated by single spaces.
func MaskCardNumber(digits string) string {
	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		if i >= 4 && i < 12 {
			b.WriteByte('*')
		} else {
			b.WriteByte(digits[i])
		}
	}
	return b.String()
}

// FormatExpiry strips non-digits, inserts '/' after the second digit and
// truncates to "MM/YY".
func FormatExpiry(input string) string {
	digits := digitsOnly(input)
	if len(digits) < 2 {
		return digits
	}
	formatted := digits[:2] + "/" + digits[2:]
	if len(formatted) > ExpiryLength {
		return formatted[:ExpiryLength]
	}
	return formatted
}

// LastFour returns the last four digits of a card number
func LastFour(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

// NewCardDraft is the transient, unsaved new-card input. The number field
// always holds sanitized digits; callers render it through Masked.
type NewCardDraft struct {
	Number string `json:"-"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
}

// Valid reports whether the draft is complete enough to submit: a full
// 16-digit number, a non-empty name and a fully entered expiry.
func (d NewCardDraft) Valid() bool {
	return len(d.Number) == CardNumberLength &&
		strings.TrimSpace(d.Name) != "" &&
		len(d.Expiry) == ExpiryLength
}

// Masked renders the draft number for display
func (d NewCardDraft) Masked() string {
	return MaskCardNumber(d.Number)
}
