package extract

// PatternSet holds the regular-expression and keyword tables the extractor
// scans with. Patterns are kept as plain strings and compiled at extraction
// time so a bad entry is skipped with a warning instead of aborting the scan.
// Tests substitute their own sets to exercise individual rules.
type PatternSet struct {
	// Email patterns match loosely; every candidate is re-checked with a
	// strict validator before it is kept.
	Email []string

	// Website patterns are tried in order: full URL with scheme, bare
	// www-prefixed domain, bare domain with a two-plus-letter TLD.
	Website []string

	// Phone matches any phone-shaped run of digits, spaces, dashes and
	// parentheses. Length filtering happens after normalization.
	Phone []string

	// Social maps a platform name to its profile patterns. SocialOrder
	// fixes the scan order so results are deterministic.
	Social      map[string][]string
	SocialOrder []string

	// TitleKeywords and CompanyKeywords are matched as whole words,
	// case-insensitively, against individual lines.
	TitleKeywords   []string
	CompanyKeywords []string

	// TLDs a website candidate must end with to be kept.
	TLDs []string
}

// Platform names used as keys in PatternSet.Social and ContactRecord.Social.
const (
	PlatformLinkedIn  = "linkedin"
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)

// DefaultPatterns returns the pattern tables tuned for Latin-script business
// cards.
func DefaultPatterns() PatternSet {
	return PatternSet{
		Email: []string{
			`\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`,
		},
		Website: []string{
			`https?://(?:www\.)?[a-z0-9-]+\.[a-z]{2,}(?:\.[a-z]{2,})?`,
			`www\.[a-z0-9-]+\.[a-z]{2,}`,
			`\b[a-z0-9-]+\.[a-z]{2,}(?:\.[a-z]{2,})?\b`,
		},
		Phone: []string{
			`\+?[\d\s\-()]{7,}`,
		},
		Social: map[string][]string{
			PlatformLinkedIn: {
				`linkedin\.com/(?:in|company)/[a-z0-9-]+`,
				`li\.[a-z]{2,3}/[a-z0-9-]+`,
			},
			PlatformTwitter: {
				`twitter\.com/[a-z0-9_]{1,15}`,
				`@[a-z0-9_]{1,15}\b`,
			},
			PlatformFacebook: {
				`facebook\.com/[a-z0-9.-]+`,
			},
			PlatformInstagram: {
				`instagram\.com/[a-z0-9_.]+`,
			},
		},
		SocialOrder: []string{
			PlatformLinkedIn,
			PlatformTwitter,
			PlatformFacebook,
			PlatformInstagram,
		},
		TitleKeywords: []string{
			"CEO", "CTO", "CFO", "Manager", "Director", "Engineer",
			"Specialist", "Analyst", "Designer", "Developer", "Expert",
		},
		CompanyKeywords: []string{
			"Inc", "LLC", "Ltd", "Corp", "Group", "Technologies",
			"Solutions", "Labs", "Studio", "Consulting",
		},
		TLDs: []string{"com", "org", "net", "io", "co"},
	}
}
