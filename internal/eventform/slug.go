package eventform

import (
	"regexp"
	"strings"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// DeriveSlug turns a free-text title into a URL slug: lower-cased, trimmed,
// everything outside [a-z0-9], whitespace and '-' dropped, whitespace runs
// replaced by a single hyphen and hyphen runs collapsed.
// DeriveSlug(DeriveSlug(t)) == DeriveSlug(t) for every t.
func DeriveSlug(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugHyphens.ReplaceAllString(s, "-")
}

// NormalizeTitle is the form of a title that is stored and probed for uniqueness.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// NormalizeSlug is the form of a slug that is stored.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
