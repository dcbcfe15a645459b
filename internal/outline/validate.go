package outline

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidateHeading checks a heading for structural validity. Returns true
// if valid.
func ValidateHeading(h *Heading) bool {
	if h == nil {
		return false
	}
	switch h.Level {
	case H1, H2, H3:
	default:
		return false
	}
	text := strings.TrimSpace(h.Text)
	if len(text) < 3 || len(text) > 200 {
		return false
	}
	return h.Page >= 1
}

// ValidateOutline checks every heading and the repaired-depth invariant:
// rank may grow by at most one step between consecutive entries.
func ValidateOutline(headings []Heading) error {
	last := 0
	for i := range headings {
		if !ValidateHeading(&headings[i]) {
			return fmt.Errorf("heading %d (%q): structurally invalid", i, headings[i].Text)
		}
		rank := headings[i].Level.Rank()
		if rank > last+1 {
			return fmt.Errorf("heading %d (%q): depth jumps from %d to %d", i, headings[i].Text, last, rank)
		}
		last = rank
	}
	return nil
}

// Slugify converts heading text to an anchor-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = regexp.MustCompile(`[^a-z0-9-]`).ReplaceAllString(s, "-")
	s = regexp.MustCompile(`-+`).ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 80 {
		s = s[:80]
	}
	return s
}
