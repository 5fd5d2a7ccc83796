package domain

import (
	"strconv"

	"github.com/coinshop/recharge-system/shared/models"
)

// Keypad tokens accepted by AmountEntry beyond single digits
const (
	KeypadTripleZero = "000"
	KeypadDelete     = "del"
)

// AmountEntry turns keypad input into a validated coin amount with a live
// price preview. The buffer only ever holds digits; every mutation
// re-sanitizes and clamps to the maximum bound.
type AmountEntry struct {
	buffer string
	min    int
	max    int
}

// NewAmountEntry creates an empty amount entry with the product bounds
func NewAmountEntry() *AmountEntry {
	return &AmountEntry{min: MinCustomAmount, max: MaxCustomAmount}
}

// Keypad applies a single keypad token: a digit "0".."9", the "000" block,
// or the delete token. Unknown tokens are ignored.
func (e *AmountEntry) Keypad(token string) {
	switch {
	case token == KeypadDelete:
		e.DeleteLast()
	case token == KeypadTripleZero:
		e.apply(e.buffer + "000")
	case len(token) == 1 && token[0] >= '0' && token[0] <= '9':
		e.apply(e.buffer + token)
	}
}

// DeleteLast removes the last buffered character. Deleting from an empty
// buffer is a no-op.
func (e *AmountEntry) DeleteLast() {
	if e.buffer == "" {
		return
	}
	e.apply(e.buffer[:len(e.buffer)-1])
}

// SetQuickAmount replaces the buffer wholesale with a quick-select value
func (e *AmountEntry) SetQuickAmount(value int) {
	e.apply(strconv.Itoa(value))
}

// apply re-sanitizes the candidate buffer and clamps on overflow. Leading
// zeros collapse through the integer round trip.
func (e *AmountEntry) apply(next string) {
	sanitized := digitsOnly(next)
	if sanitized == "" {
		e.buffer = ""
		return
	}

	value, err := strconv.Atoi(sanitized)
	if err != nil || value > e.max {
		e.buffer = strconv.Itoa(e.max)
		return
	}
	e.buffer = strconv.Itoa(value)
}

// Amount returns the parsed amount, 0 when the buffer is empty
func (e *AmountEntry) Amount() int {
	if e.buffer == "" {
		return 0
	}
	value, err := strconv.Atoi(e.buffer)
	if err != nil {
		return 0
	}
	return value
}

// Display renders the buffer, "0" when empty
func (e *AmountEntry) Display() string {
	if e.buffer == "" {
		return "0"
	}
	return e.buffer
}

// Price returns the live price preview, zero unless the amount is a
// positive integer.
func (e *AmountEntry) Price() models.Money {
	amount := e.Amount()
	if amount <= 0 {
		return models.NewMoney(0, Currency)
	}
	return models.NewMoney(CustomPriceCents(amount), Currency)
}

// CanContinue reports whether the entered amount satisfies the minimum
func (e *AmountEntry) CanContinue() bool {
	return e.Amount() >= e.min
}
