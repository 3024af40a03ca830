package extract

import (
	"regexp"
	"strings"
)

// Line-oriented heuristics for name, title and company. These rely on the
// positional signal in the segmented lines: the first matching line wins,
// which on most cards means the name precedes the title.
var (
	// properNameRe matches a simple two-token proper name occupying the
	// whole line. Each token may carry one camelCase-joined run
	// ("JohnSmith"), which gets split apart after the match.
	properNameRe = regexp.MustCompile(`^(?:[A-Z][a-z]*){1,2}\s+(?:[A-Z][a-z]*){1,2}$`)
	// allCapsNameRe guards against OCR emitting the whole name line in
	// caps. Normalization usually re-cases these first, but the segmenter
	// can also be fed text that skipped normalization.
	allCapsNameRe = regexp.MustCompile(`^[A-Z]{2,}\s+[A-Z]{2,}$`)
	// camelBreakRe splits camelCase-joined runs ("JohnSmith").
	camelBreakRe = regexp.MustCompile(`([a-z])([A-Z])`)
	capsRunRe    = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	// seniorityRe matches titles like "Senior Backend-Engineer" that
	// carry no keyword from the title list.
	seniorityRe = regexp.MustCompile(`(?i)\b(?:senior|junior|lead)\s+[\w-]+`)
	// ampersandRe matches "Word & Word" company names.
	ampersandRe = regexp.MustCompile(`[A-Z][a-zA-Z]+\s+&\s+[A-Z][a-zA-Z]+`)
)

// extractName returns the best-guess person name and the raw line it was
// found on. The raw line is used by the assembler to strip the name out of
// an overlapping title.
func (e *Extractor) extractName(lines []string) (*string, string) {
	for _, line := range lines {
		if !properNameRe.MatchString(line) && !allCapsNameRe.MatchString(line) {
			continue
		}
		name := camelBreakRe.ReplaceAllString(line, `${1} ${2}`)
		name = capsRunRe.ReplaceAllStringFunc(name, recaseToken)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		return &name, line
	}
	return nil, ""
}

// extractTitle returns the first line that carries a title keyword or a
// seniority qualifier.
func (e *Extractor) extractTitle(lines []string) *string {
	for _, line := range lines {
		if (e.titleRe != nil && e.titleRe.MatchString(line)) || seniorityRe.MatchString(line) {
			t := strings.TrimSpace(line)
			return &t
		}
	}
	return nil
}

// extractCompany returns the first line that carries a company suffix
// keyword or a "Word & Word" shape.
func (e *Extractor) extractCompany(lines []string) *string {
	for _, line := range lines {
		if (e.companyRe != nil && e.companyRe.MatchString(line)) || ampersandRe.MatchString(line) {
			c := strings.TrimSpace(line)
			return &c
		}
	}
	return nil
}
