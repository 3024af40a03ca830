package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	e := New(Config{})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"us with country code", "+1 415 555 0100", "+1 415-555-0100"},
		{"us without plus", "(415) 555-0100", "+1 415-555-0100"},
		{"us with dashes", "415-555-0100", "+1 415-555-0100"},
		{"uk international", "+44 20 7946 0958", "+44 20 7946 0958"},
		{"too short falls back to digits", "123 4567", "1234567"},
		{"garbage digits preserved", "0000000", "0000000"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhoneRegion(t *testing.T) {
	e := New(Config{DefaultRegion: "GB"})
	assert.Equal(t, "+44 20 7946 0958", e.NormalizePhone("020 7946 0958"))
}

func TestExtractPhonesLengthFloor(t *testing.T) {
	e := New(Config{})
	phones := e.extractPhones("call 555-0100 or +1 415 555 0100")

	// The seven-digit candidate is dropped by the ten-digit floor.
	assert.Equal(t, []string{"+1 415-555-0100"}, phones)
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 11, countDigits("+1 415-555-0100"))
	assert.Equal(t, 0, countDigits("no digits"))
	assert.Equal(t, 0, countDigits(""))
}
