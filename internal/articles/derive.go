package articles

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// wordsPerMinute is the reading speed assumed by ReadingTime.
const wordsPerMinute = 200

const ellipsis = "..."

var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugHyphenRe  = regexp.MustCompile(`[\s-]+`)

	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italicRe     = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe slug from a title: lowercase, accents folded
// to their base letters, everything outside [a-z0-9] collapsed to single
// hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = stripDiacritics(s)
	s = slugInvalidRe.ReplaceAllString(s, "")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripDiacritics decomposes the string and drops combining marks, so that
// "café" folds to "cafe".
func stripDiacritics(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Excerpt returns a plain-text preview of the body, at most maxLen runes
// before the ellipsis. Truncation backs up to the last whitespace boundary
// unless that would cut away more than a fifth of the budget.
func Excerpt(body string, maxLen int) string {
	if maxLen < 1 {
		maxLen = DefaultExcerptLength
	}
	plain := plainText(body)
	runes := []rune(plain)
	if len(runes) <= maxLen {
		return plain
	}
	cut := runes[:maxLen]
	if b := lastSpace(cut); b*5 >= maxLen*4 {
		cut = cut[:b]
	}
	return string(cut) + ellipsis
}

// plainText strips Markdown constructs for preview purposes: fenced code
// blocks and images disappear, links keep their text, emphasis and heading
// markers are removed and whitespace is collapsed.
func plainText(body string) string {
	s := fencedCodeRe.ReplaceAllString(body, " ")
	s = imageRe.ReplaceAllString(s, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = boldRe.ReplaceAllString(s, "$1$2")
	s = italicRe.ReplaceAllString(s, "$1$2")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

// ReadingTime estimates the minutes needed to read the body, rounding up
// and never reporting less than one minute.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 1
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
