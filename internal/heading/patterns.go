package heading

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docline/internal/outline"
)

// MatchLevel reports the first level whose pattern list matches the text,
// scanning H1, then H2, then H3.
func (p *Profile) MatchLevel(text string) (outline.Level, bool) {
	for _, re := range p.H1 {
		if re.MatchString(text) {
			return outline.H1, true
		}
	}
	for _, re := range p.H2 {
		if re.MatchString(text) {
			return outline.H2, true
		}
	}
	for _, re := range p.H3 {
		if re.MatchString(text) {
			return outline.H3, true
		}
	}
	return "", false
}

// PatternScore grades text against the level patterns and partial rules:
// 1.0 on any level-pattern match, the first matching partial rule's score
// otherwise, 0 when nothing fits.
func (p *Profile) PatternScore(text string) float64 {
	if _, ok := p.MatchLevel(text); ok {
		return 1.0
	}
	for _, rule := range p.Partials {
		if rule.Match(text) {
			return rule.Score
		}
	}
	return 0
}

// IsExcluded reports whether any exclusion rule matches the lowercased
// text.
func (p *Profile) IsExcluded(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range p.Exclusions {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsProse reports whether text reads like running prose: any prose
// indicator matches the lowercased text, or the text carries both an
// article and a conjunction and runs past six words.
func (p *Profile) IsProse(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range p.Prose {
		if re.MatchString(lower) {
			return true
		}
	}
	words := strings.Fields(lower)
	return hasAnyWord(words, "the", "a", "an") &&
		hasAnyWord(words, "and", "or", "but", "so") &&
		len(words) > 6
}

func hasAnyWord(fields []string, words ...string) bool {
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isTitleCase reports whether s is title-cased: uppercase letters appear
// only after uncased characters, lowercase only after cased ones, and at
// least one cased character is present.
func isTitleCase(s string) bool {
	prevCased := false
	hasCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			hasCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
			hasCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}

// isAllUpper reports whether s has at least one cased character and no
// lowercase ones.
func isAllUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}

// startsUpper reports whether the first rune of s is uppercase.
func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
