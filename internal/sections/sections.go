package sections

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docline/internal/heading"
	"github.com/dgallion1/docline/internal/outline"
)

// maxContentChars caps the joined content of one section.
const maxContentChars = 2500

var (
	anySpace    = regexp.MustCompile(`\s+`)
	spacedDot   = regexp.MustCompile(`\s*\.\s*`)
	spacedComma = regexp.MustCompile(`\s*,\s*`)
)

// BuildSections links the body text that follows each heading. A heading's
// run is the first unclaimed run on its page whose trimmed text equals the
// heading text; its content is the text of subsequent runs up to any other
// heading's run. Content collection skips fragments under 5 chars, runs
// styled like headings (bold and over 1.3x the average font size), and
// page furniture in the outer 5% of the page extent, and stops once the
// joined content passes maxContentChars. Sections come back in heading
// order, one per heading, with empty content when no run matches.
func BuildSections(runs []outline.TextRun, headings []outline.Heading) []outline.Section {
	if len(runs) == 0 || len(headings) == 0 {
		return nil
	}

	avgFont := heading.Analyze(runs).AvgFontSize
	heights := pageHeights(runs)

	starts := make([]int, len(headings))
	claimed := make(map[int]bool, len(headings))
	for i, h := range headings {
		starts[i] = -1
		for j, run := range runs {
			if claimed[j] || run.PageNum != h.Page {
				continue
			}
			if strings.TrimSpace(run.Text) == h.Text {
				starts[i] = j
				claimed[j] = true
				break
			}
		}
	}

	sections := make([]outline.Section, 0, len(headings))
	for i, h := range headings {
		sec := outline.Section{Level: h.Level, Text: h.Text, Page: h.Page}
		if starts[i] >= 0 {
			sec.Content = collectContent(runs, starts[i], claimed, avgFont, heights)
		}
		sections = append(sections, sec)
	}
	return sections
}

// collectContent gathers body text from the runs after start until the next
// heading run.
func collectContent(runs []outline.TextRun, start int, boundaries map[int]bool, avgFont float64, heights map[int]float64) string {
	var parts []string
	joined := 0

	for j := start + 1; j < len(runs); j++ {
		if boundaries[j] {
			break
		}
		run := runs[j]
		text := strings.TrimSpace(run.Text)
		if utf8.RuneCountInString(text) < 5 {
			continue
		}
		if run.IsBold && avgFont > 0 && run.FontSize > avgFont*1.3 {
			continue
		}
		if height := heights[run.PageNum]; height > 0 {
			rel := run.TopPosition / height
			if rel <= 0.05 || rel >= 0.95 {
				continue
			}
		}

		if joined > 0 {
			joined++
		}
		joined += utf8.RuneCountInString(text)
		parts = append(parts, text)
		if joined > maxContentChars {
			break
		}
	}

	return normalize(strings.Join(parts, " "))
}

// normalize collapses whitespace and re-spaces periods and commas.
func normalize(s string) string {
	s = anySpace.ReplaceAllString(s, " ")
	s = spacedDot.ReplaceAllString(s, ". ")
	s = spacedComma.ReplaceAllString(s, ", ")
	return strings.TrimSpace(s)
}

// pageHeights finds each page's max vertical extent (top + line height).
func pageHeights(runs []outline.TextRun) map[int]float64 {
	heights := make(map[int]float64, 4)
	for _, r := range runs {
		if extent := r.TopPosition + r.LineHeight; extent > heights[r.PageNum] {
			heights[r.PageNum] = extent
		}
	}
	return heights
}
