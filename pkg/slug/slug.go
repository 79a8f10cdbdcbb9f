package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate turns a title into a URL-friendly slug. Accents are folded to
// their ASCII base letters and every other run of non-alphanumerics becomes a
// single hyphen.
//
//	"Rosé & Spray Roses: A Guide" -> "rose-spray-roses-a-guide"
func Generate(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(strings.TrimSpace(title)),
	)
	if err != nil {
		folded = strings.ToLower(strings.TrimSpace(title))
	}
	return strings.Trim(nonAlnum.ReplaceAllString(folded, "-"), "-")
}

// Unique returns s, or s suffixed with -2, -3, ... until taken reports false.
func Unique(s string, taken func(string) bool) string {
	if !taken(s) {
		return s
	}
	for i := 2; ; i++ {
		candidate := s + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
