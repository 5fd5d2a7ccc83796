package domain

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountEntry_Keypad(t *testing.T) {
	tests := []struct {
		name            string
		tokens          []string
		expectedDisplay string
		expectedAmount  int
	}{
		{
			name:            "empty entry displays zero",
			tokens:          nil,
			expectedDisplay: "0",
			expectedAmount:  0,
		},
		{
			name:            "digits accumulate",
			tokens:          []string{"5", "0", "0"},
			expectedDisplay: "500",
			expectedAmount:  500,
		},
		{
			name:            "triple zero appends three zeros",
			tokens:          []string{"7", "000"},
			expectedDisplay: "7000",
			expectedAmount:  7000,
		},
		{
			name:            "leading zeros collapse",
			tokens:          []string{"0", "0", "5"},
			expectedDisplay: "5",
			expectedAmount:  5,
		},
		{
			name:            "triple zero on empty buffer stays empty",
			tokens:          []string{"000"},
			expectedDisplay: "0",
			expectedAmount:  0,
		},
		{
			name:            "overflow clamps to the maximum",
			tokens:          []string{"9", "9", "9", "9", "9", "9"},
			expectedDisplay: "100000",
			expectedAmount:  MaxCustomAmount,
		},
		{
			name:            "delete removes the last digit",
			tokens:          []string{"1", "2", "3", "del"},
			expectedDisplay: "12",
			expectedAmount:  12,
		},
		{
			name:            "delete on empty buffer is a no-op",
			tokens:          []string{"del", "del"},
			expectedDisplay: "0",
			expectedAmount:  0,
		},
		{
			name:            "unknown tokens are ignored",
			tokens:          []string{"5", "x", "-", "0"},
			expectedDisplay: "50",
			expectedAmount:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewAmountEntry()
			for _, token := range tt.tokens {
				entry.Keypad(token)
			}

			assert.Equal(t, tt.expectedDisplay, entry.Display())
			assert.Equal(t, tt.expectedAmount, entry.Amount())
		})
	}
}

func TestAmountEntry_DeleteToEmpty(t *testing.T) {
	entry := NewAmountEntry()
	entry.Keypad("4")
	entry.Keypad("2")

	entry.DeleteLast()
	entry.DeleteLast()

	assert.Equal(t, "0", entry.Display())
	assert.Equal(t, 0, entry.Amount())
	assert.False(t, entry.CanContinue())
}

func TestAmountEntry_SetQuickAmount(t *testing.T) {
	entry := NewAmountEntry()
	entry.Keypad("7")
	entry.Keypad("7")

	// Quick select replaces the buffer wholesale
	entry.SetQuickAmount(1000)

	assert.Equal(t, "1000", entry.Display())
	assert.Equal(t, 1000, entry.Amount())
}

func TestAmountEntry_Price(t *testing.T) {
	entry := NewAmountEntry()
	assert.True(t, entry.Price().IsZero())

	entry.SetQuickAmount(500)
	assert.Equal(t, "5.20", entry.Price().Format())

	entry.SetQuickAmount(MaxCustomAmount)
	assert.Equal(t, "1040.00", entry.Price().Format())
}

func TestAmountEntry_CanContinue(t *testing.T) {
	entry := NewAmountEntry()
	assert.False(t, entry.CanContinue())

	entry.Keypad("1")
	assert.True(t, entry.CanContinue())
}

func TestAmountEntry_ClampIsStable(t *testing.T) {
	entry := NewAmountEntry()
	entry.SetQuickAmount(MaxCustomAmount)

	// Further input on a clamped buffer clamps again
	entry.Keypad("9")
	assert.Equal(t, strconv.Itoa(MaxCustomAmount), entry.Display())
}
