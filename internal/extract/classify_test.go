package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLine(t *testing.T) {
	name := "John Smith"
	title := "Senior Engineer"
	company := "Acme Technologies"
	rec := &ContactRecord{
		Name:     &name,
		Title:    &title,
		Company:  &company,
		Emails:   []string{"john.smith@acme.com"},
		Phones:   []string{"+1 415-555-0100"},
		Websites: []string{"https://www.acme.com"},
		Social: map[string][]string{
			PlatformTwitter:  {"https://twitter.com/acmehq"},
			PlatformLinkedIn: {"https://linkedin.com/in/john-smith"},
		},
	}

	tests := []struct {
		name     string
		line     string
		expected LineType
	}{
		{"name line", "John Smith", LineTypeName},
		{"title line", "Senior Engineer", LineTypeTitle},
		{"company line", "Acme Technologies", LineTypeCompany},
		{"email line", "john.smith@acme.com", LineTypeEmail},
		{"email with label", "Email: john.smith@acme.com", LineTypeEmail},
		{"phone exact", "+1 415-555-0100", LineTypePhone},
		{"phone different formatting", "+1 (415) 555-0100", LineTypePhone},
		{"website with scheme", "https://www.acme.com", LineTypeWebsite},
		{"website without scheme", "www.acme.com", LineTypeWebsite},
		{"social url", "linkedin.com/in/john-smith", LineTypeSocial},
		{"twitter handle", "@acmehq", LineTypeSocial},
		{"unrelated", "est. 1999", LineTypeOther},
		{"empty", "   ", LineTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLine(tt.line, rec))
		})
	}
}

func TestClassifyLineNilRecord(t *testing.T) {
	assert.Equal(t, LineTypeOther, ClassifyLine("anything", nil))
}

func TestClassifyLineEmptyRecord(t *testing.T) {
	rec := &ContactRecord{
		Emails:   []string{},
		Phones:   []string{},
		Websites: []string{},
		Social:   map[string][]string{},
	}
	assert.Equal(t, LineTypeOther, ClassifyLine("John Smith", rec))
}
