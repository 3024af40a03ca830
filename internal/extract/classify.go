package extract

import "strings"

// LineType labels a raw OCR line by which field of a ContactRecord it
// landed in.
type LineType string

const (
	LineTypeName    LineType = "NAME"
	LineTypeTitle   LineType = "TITLE"
	LineTypeCompany LineType = "COMPANY"
	LineTypeEmail   LineType = "EMAIL"
	LineTypePhone   LineType = "PHONE"
	LineTypeWebsite LineType = "WEBSITE"
	LineTypeSocial  LineType = "SOCIAL"
	LineTypeOther   LineType = "OTHER"
)

// ClassifiedLine pairs a normalized line with the label it was given.
type ClassifiedLine struct {
	Line string   `json:"line"`
	Type LineType `json:"type"`
}

// ClassifyText runs the full pipeline over raw text and labels each
// normalized line against the extracted record.
func (e *Extractor) ClassifyText(raw string) []ClassifiedLine {
	rec := e.ExtractContactInfo(raw)
	lines := segmentLines(Normalize(raw))
	out := make([]ClassifiedLine, len(lines))
	for i, line := range lines {
		out[i] = ClassifiedLine{Line: line, Type: ClassifyLine(line, rec)}
	}
	return out
}

// ClassifyLine labels a single line by membership against an extracted
// record. Websites and social URLs are compared with and without their
// scheme since the record carries scheme-qualified values while the card
// usually prints the bare form.
func ClassifyLine(line string, rec *ContactRecord) LineType {
	if rec == nil {
		return LineTypeOther
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return LineTypeOther
	}

	if rec.Name != nil && *rec.Name == text {
		return LineTypeName
	}
	if rec.Title != nil && *rec.Title == text {
		return LineTypeTitle
	}
	if rec.Company != nil && *rec.Company == text {
		return LineTypeCompany
	}
	for _, email := range rec.Emails {
		if strings.Contains(text, email) {
			return LineTypeEmail
		}
	}
	if lineDigits := digitsOnly(text); lineDigits != "" {
		for _, phone := range rec.Phones {
			if strings.Contains(text, phone) || strings.Contains(lineDigits, digitsOnly(phone)) {
				return LineTypePhone
			}
		}
	}
	for _, site := range rec.Websites {
		if matchesURL(text, site) {
			return LineTypeWebsite
		}
	}
	for _, urls := range rec.Social {
		for _, u := range urls {
			if matchesURL(text, u) {
				return LineTypeSocial
			}
			// A bare @handle line maps to the rewritten profile URL.
			if strings.HasPrefix(text, "@") && strings.HasSuffix(u, "/"+text[1:]) {
				return LineTypeSocial
			}
		}
	}
	return LineTypeOther
}

func matchesURL(text, u string) bool {
	if text == u {
		return true
	}
	stripped := strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
	return text == stripped
}
