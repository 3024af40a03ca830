package extract

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone converts a phone-shaped substring into the canonical
// international format when it parses as a valid number, and falls back to a
// bare digit string otherwise. It never fails; the caller applies the digit
// length floor.
func (e *Extractor) NormalizePhone(raw string) string {
	digits := digitsOnly(raw)
	cleaned := digits
	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		cleaned = "+" + digits
	}

	num, err := phonenumbers.Parse(cleaned, e.cfg.DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return digits
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
