package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"no matches unchanged", "hello world", "hello world"},
		{"at glyph repaired", "john©acme.com", "john@acme.com"},
		{"spaced at glyph repaired", "john © acme.com", "john@acme.com"},
		{"section sign repaired", "jane§widgets.io", "jane@widgets.io"},
		{"a for at between fragments", "john smith a acme.com", "john smith@acme.com"},
		{"break before at removed", "smit h@acme.com", "smith@acme.com"},
		{"double w collapsed", "ww.acme.com", "www.acme.com"},
		{"spaced www collapsed", "w w w . acme.com", "www.acme.com"},
		{"www left alone", "www.acme.com", "www.acme.com"},
		{"corn misread", "acme.corn", "acme.com"},
		{"corner misread", "www.acme.corner", "www.acme.com"},
		{"spaced tld dot", "acme . com", "acme.com"},
		{"allcaps recased", "JANE DOE", "Jane Doe"},
		{"short acronym recased", "IBM", "Ibm"},
		{"single capital untouched", "A big deal", "A big deal"},
		{"twitter misread", "tw1tter.com/acme", "twitter.com/acme"},
		{"twitter bang misread", "Tw!tter.com/acme", "twitter.com/acme"},
		{"linkedin misread", "1inkedin.com/in/jane", "linkedin.com/in/jane"},
		{"facebook misread", "faceb00k.com/acme", "facebook.com/acme"},
		{"newlines never joined", "Acme Technologies\njohn.smith@acme.com", "Acme Technologies\njohn.smith@acme.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"John Smith\nSenior Engineer\nAcme Technologies\njohn.smith@acme.com\n+1 415 555 0100\nwww.acme.com",
		"john smith a acme.corn",
		"JANE DOE\nCTO",
		"w w w . acme . corn",
		"jane©widgets.io\ntw1tter.com/widgets",
		"completely unrelated text 12345",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input: %q", input)
	}
}

func TestSegmentLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"only whitespace", "  \n\t\n ", []string{}},
		{"trims and drops empties", " John Smith \n\n  CEO  \n", []string{"John Smith", "CEO"}},
		{"order preserved", "a\nb\nc", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, segmentLines(tt.input))
		})
	}
}
