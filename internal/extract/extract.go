// Package extract turns noisy OCR text from a scanned business card into a
// structured contact record. The pipeline is purely functional: normalize the
// text, segment it into lines, run independent field extractors, and assemble
// the results. It performs no I/O and holds no state between calls.
package extract

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ContactRecord is the structured output of a scan. Collection fields are
// deduplicated; Name, Title and Company are nil when no line matched their
// heuristic. Social only carries platforms that produced at least one match.
type ContactRecord struct {
	Name     *string             `json:"name"`
	Title    *string             `json:"title"`
	Company  *string             `json:"company"`
	Emails   []string            `json:"emails"`
	Phones   []string            `json:"phones"`
	Websites []string            `json:"websites"`
	Social   map[string][]string `json:"social"`
	RawText  string              `json:"rawText"`
}

// Config tunes an Extractor. Zero values fall back to sensible defaults.
type Config struct {
	// DefaultRegion is the ISO 3166-1 region used when parsing phone
	// numbers without a country code. Default "US".
	DefaultRegion string
	// MinPhoneDigits is the minimum digit count a normalized phone must
	// have to be kept. Default 10.
	MinPhoneDigits int
	// Patterns overrides the default pattern tables.
	Patterns *PatternSet
	// Logger receives warnings about skipped patterns. Nil disables them.
	Logger *zerolog.Logger
}

const (
	defaultRegion         = "US"
	defaultMinPhoneDigits = 10
)

// Extractor runs the extraction pipeline. It is safe for concurrent use.
type Extractor struct {
	cfg       Config
	patterns  PatternSet
	validate  *validator.Validate
	log       zerolog.Logger
	titleRe   *regexp.Regexp
	companyRe *regexp.Regexp
}

// New builds an Extractor from cfg.
func New(cfg Config) *Extractor {
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = defaultRegion
	}
	if cfg.MinPhoneDigits <= 0 {
		cfg.MinPhoneDigits = defaultMinPhoneDigits
	}
	patterns := DefaultPatterns()
	if cfg.Patterns != nil {
		patterns = *cfg.Patterns
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	e := &Extractor{
		cfg:      cfg,
		patterns: patterns,
		validate: validator.New(),
		log:      log,
	}
	e.titleRe = e.compileKeywords(patterns.TitleKeywords)
	e.companyRe = e.compileKeywords(patterns.CompanyKeywords)
	return e
}

// compileKeywords builds a case-insensitive whole-word alternation from a
// keyword list. A nil result disables the keyword branch of the heuristic.
func (e *Extractor) compileKeywords(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return nil
	}
	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(keywords, "|") + `)\b`)
	if err != nil {
		e.log.Warn().Err(err).Msg("invalid keyword list, keyword matching disabled")
		return nil
	}
	return re
}

// ExtractContactInfo is the single entry point of the pipeline. It never
// fails: garbage input yields a record with nil and empty fields.
func (e *Extractor) ExtractContactInfo(rawText string) *ContactRecord {
	clean := Normalize(rawText)
	lines := segmentLines(clean)

	emailCandidates := e.findMatches(e.patterns.Email, clean, nil)
	emails := make([]string, 0, len(emailCandidates))
	for _, c := range emailCandidates {
		if e.validate.Var(c, "email") == nil {
			emails = append(emails, c)
		}
	}

	// Websites and social profiles are scanned with email-shaped matches
	// blanked out, so an address never leaks its domain into the website
	// set or its @-fragment into the twitter handles.
	masked := clean
	for _, c := range emailCandidates {
		masked = strings.ReplaceAll(masked, c, " ")
	}

	name, nameLine := e.extractName(lines)
	title := e.extractTitle(lines)
	if title != nil && nameLine != "" {
		stripped := strings.TrimSpace(strings.ReplaceAll(*title, nameLine, ""))
		if stripped == "" {
			title = nil
		} else {
			title = &stripped
		}
	}

	return &ContactRecord{
		Name:     name,
		Title:    title,
		Company:  e.extractCompany(lines),
		Emails:   emails,
		Phones:   e.extractPhones(clean),
		Websites: e.extractWebsites(masked),
		Social:   e.extractSocial(masked),
		RawText:  clean,
	}
}

// findMatches runs each pattern case-insensitively against text and unions
// the matches into a deduplicated, insertion-ordered set. transform, when
// non-nil, is applied to each match before dedup. A pattern that fails to
// compile is skipped with a warning.
func (e *Extractor) findMatches(patterns []string, text string, transform func(string) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			e.log.Warn().Err(err).Str("pattern", p).Msg("skipping invalid pattern")
			continue
		}
		for _, m := range re.FindAllString(text, -1) {
			if transform != nil {
				m = transform(m)
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

// extractWebsites returns scheme-qualified URLs with a known TLD. Candidates
// containing @ belong to the email extractor and are dropped, and every
// survivor must pass a strict URL check with an explicit scheme.
func (e *Extractor) extractWebsites(text string) []string {
	candidates := e.findMatches(e.patterns.Website, text, ensureScheme)
	out := make([]string, 0, len(candidates))
	for _, u := range candidates {
		if strings.Contains(u, "@") {
			continue
		}
		if !e.hasKnownTLD(u) {
			continue
		}
		if e.validate.Var(u, "url") != nil {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (e *Extractor) hasKnownTLD(u string) bool {
	lower := strings.ToLower(u)
	for _, tld := range e.patterns.TLDs {
		if strings.HasSuffix(lower, "."+tld) {
			return true
		}
	}
	return false
}

func ensureScheme(u string) string {
	if strings.HasPrefix(strings.ToLower(u), "http") {
		return u
	}
	return "https://" + u
}

// extractSocial maps each platform to its matched profile URLs. A bare
// twitter @handle is rewritten to a full profile URL; everything else just
// gets a scheme when missing. Platforms without matches are absent from the
// result.
func (e *Extractor) extractSocial(text string) map[string][]string {
	out := make(map[string][]string)
	for _, platform := range e.patterns.SocialOrder {
		matches := e.findMatches(e.patterns.Social[platform], text, func(m string) string {
			if platform == PlatformTwitter && strings.HasPrefix(m, "@") {
				return "https://twitter.com/" + m[1:]
			}
			return ensureScheme(m)
		})
		if len(matches) > 0 {
			out[platform] = matches
		}
	}
	return out
}

// extractPhones normalizes every phone-shaped candidate and keeps those that
// meet the minimum digit count. The threshold is applied once, here, after
// normalization.
func (e *Extractor) extractPhones(text string) []string {
	candidates := e.findMatches(e.patterns.Phone, text, nil)
	seen := make(map[string]struct{})
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		p := e.NormalizePhone(c)
		if countDigits(p) < e.cfg.MinPhoneDigits {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
