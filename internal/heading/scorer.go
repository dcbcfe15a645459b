package heading

import (
	"math"
	"regexp"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
)

// Structural cues shared by the scorer and the level classifier.
var (
	numberedOutline  = regexp.MustCompile(`^\d+\.(\d+\.)*\s+[A-Z]`)
	longUppercase    = regexp.MustCompile(`^[A-Z][A-Z\s]+$`)
	shortTitlePhrase = regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+){1,3}$`)
	chapterPrefix    = regexp.MustCompile(`^(Chapter|CHAPTER)\s+\d+`)
	numberedSection  = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	twoLevelNumber   = regexp.MustCompile(`^\d+\.\d+`)
	phaseMarker      = regexp.MustCompile(`^(Phase|Round|Step)\s+\d+`)
)

// Score rates one run against the document context using the profile's
// weight table. The result always lies in [0, 1], for arbitrary input.
func Score(run outline.TextRun, ctx Context, isolated bool, p *Profile) float64 {
	text := strings.TrimSpace(run.Text)
	words := strings.Fields(text)
	w := p.Weights
	score := 0.0

	if run.IsBold {
		score += w.Bold
	}
	if run.IsItalic && !run.IsBold {
		score += w.ItalicOnly
	}
	if ctx.AvgFontSize > 0 && run.FontSize > ctx.AvgFontSize {
		ratio := run.FontSize / ctx.AvgFontSize
		score += math.Min(w.SizeCap, (ratio-1)*w.SizeSlope)
	}

	if n := len(words); n >= 1 && n <= 12 {
		if n <= 6 {
			score += w.ShortPhrase
		} else {
			score += w.LongPhrase
		}
	}

	switch {
	case isAllUpper(text) && runeLen(text) > 8:
		score += w.Uppercase
	case isTitleCase(text) && len(words) >= 2:
		score += w.TitleCase
	case startsUpper(text) && len(words) >= 2:
		score += w.Capitalized
	}

	if run.LeftMargin <= ctx.MinLeftMargin+10 {
		score += w.LeftAligned
	}
	if isolated {
		score += w.Isolated
	}

	score += p.PatternScore(text) * w.Pattern

	if strings.HasSuffix(text, ":") && isTitleCase(text) {
		score += w.ColonTitle
	}
	if numberedOutline.MatchString(text) {
		score += w.Numbered
	}
	if containsAny(text, p.BonusWords) {
		score += w.Thematic
	}

	if len(words) > 15 {
		score -= w.ManyWords
	}
	if p.IsExcluded(text) {
		score -= w.Excluded
	}
	if p.IsProse(text) {
		score -= w.Prose
	}
	if runeLen(text) < 5 {
		score -= w.ShortText
	}

	return math.Max(0, math.Min(1, score))
}

// ClassifyLevel maps (text, score, run style) to a heading level. Explicit
// pattern matches win outright; the profile's score floor gates only the
// fallback path.
func ClassifyLevel(text string, score float64, run outline.TextRun, p *Profile) (outline.Level, bool) {
	if level, ok := p.MatchLevel(text); ok {
		return level, true
	}
	if score < p.MinScore {
		return "", false
	}

	words := strings.Fields(text)

	if (isAllUpper(text) && runeLen(text) > 15) ||
		chapterPrefix.MatchString(text) ||
		containsAny(text, p.H1Words) ||
		(score >= 0.7 && len(words) <= 6) {
		return outline.H1, true
	}

	if numberedSection.MatchString(text) ||
		(isAllUpper(text) && runeLen(text) >= 8 && runeLen(text) <= 15) ||
		(isTitleCase(text) && len(words) >= 3 && score >= 0.6) {
		return outline.H2, true
	}

	if (strings.HasSuffix(text, ":") && isTitleCase(text)) ||
		twoLevelNumber.MatchString(text) ||
		strings.HasPrefix(text, "•") ||
		phaseMarker.MatchString(text) {
		return outline.H3, true
	}

	if run.IsBold && score >= 0.6 {
		switch {
		case len(words) <= 4:
			return outline.H1, true
		case len(words) <= 8:
			return outline.H2, true
		default:
			return outline.H3, true
		}
	}
	if score >= 0.5 {
		return outline.H2, true
	}
	return outline.H3, true
}
