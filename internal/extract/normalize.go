package extract

import (
	"regexp"
	"strings"
)

// transform is a single pure text rewrite. The normalizer applies an ordered
// list of these; later rules may rely on earlier ones having already
// canonicalized substrings.
type transform struct {
	name string
	re   *regexp.Regexp
	repl string
	// fn, when set, is applied to each match instead of repl.
	fn func(string) string
}

func (t transform) apply(s string) string {
	if t.fn != nil {
		return t.re.ReplaceAllStringFunc(s, t.fn)
	}
	return t.re.ReplaceAllString(s, t.repl)
}

// ocrTransforms repair systematic OCR misreads. Separators in the email rules
// are restricted to spaces and tabs so a rewrite never joins text across
// lines. The all-caps rule is a deliberate, imperfect heuristic: it guards
// against OCR upper-casing whole lines at the cost of re-casing legitimate
// acronyms ("IBM" becomes "Ibm").
var ocrTransforms = []transform{
	{
		name: "at_glyph",
		re:   regexp.MustCompile(`(\S+)[ \t]*[©§][ \t]*(\S+\.\S+)`),
		repl: `${1}@${2}`,
	},
	{
		name: "a_for_at",
		re:   regexp.MustCompile(`\b([A-Za-z0-9][A-Za-z0-9._%+-]*)[ \t]+a[ \t]+([A-Za-z0-9][A-Za-z0-9-]*\.[A-Za-z0-9.-]+)`),
		repl: `${1}@${2}`,
	},
	{
		name: "local_part_break",
		re:   regexp.MustCompile(`([A-Za-z0-9])[ \t.]([A-Za-z0-9])@`),
		repl: `${1}${2}@`,
	},
	{
		name: "www_collapse",
		re:   regexp.MustCompile(`(?i)\b(?:w[ \t]*){2,3}\.[ \t]*`),
		repl: `www.`,
	},
	{
		name: "corn_to_com",
		re:   regexp.MustCompile(`(?i)\.[ \t]*(?:corner|corn)\b`),
		repl: `.com`,
	},
	{
		name: "dot_tld_spacing",
		re:   regexp.MustCompile(`(?i)([a-z0-9])[ \t]*\.[ \t]*(com|org|net|co|io)\b`),
		repl: `${1}.${2}`,
	},
	{
		name: "allcaps_recase",
		re:   regexp.MustCompile(`\b[A-Z]{2,}\b`),
		fn:   recaseToken,
	},
	{
		name: "twitter_repair",
		re:   regexp.MustCompile(`(?i)tw[i!1]tter`),
		repl: `twitter`,
	},
	{
		name: "linkedin_repair",
		re:   regexp.MustCompile(`(?i)[1l]inkedin`),
		repl: `linkedin`,
	},
	{
		name: "facebook_repair",
		re:   regexp.MustCompile(`(?i)faceb[0o]{2}k`),
		repl: `facebook`,
	},
}

// recaseToken lowers every character of an all-caps token except the first.
func recaseToken(token string) string {
	if len(token) < 2 {
		return token
	}
	return token[:1] + strings.ToLower(token[1:])
}

// Normalize rewrites common OCR misreadings into canonical forms. It is pure
// and total: text with no matches is returned unchanged, and reapplying it to
// its own output is a no-op.
func Normalize(raw string) string {
	s := raw
	for _, t := range ocrTransforms {
		s = t.apply(s)
	}
	return s
}

// segmentLines splits normalized text into trimmed, non-empty lines,
// preserving the original top-to-bottom order.
func segmentLines(normalized string) []string {
	raw := strings.Split(normalized, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
