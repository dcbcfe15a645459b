package heading

import (
	"sort"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
)

// Extract runs the detection pipeline over one document's runs: context
// analysis, per-run scoring and classification in document order with
// de-duplication, then (page, rank) ordering and hierarchy repair. It is
// a pure function of (runs, profile); the seen set lives and dies with
// the call.
func Extract(runs []outline.TextRun, p *Profile) []outline.Heading {
	if len(runs) == 0 {
		return nil
	}

	ctx := Analyze(runs)
	seen := make(map[string]struct{})
	var accepted []outline.Heading

	for i, run := range runs {
		text := strings.TrimSpace(run.Text)
		lower := strings.ToLower(text)
		if _, ok := seen[lower]; ok {
			continue
		}
		if runeLen(text) < p.MinRunes {
			continue
		}
		stripped := strings.ToLower(CleanBullet(text))
		if _, ok := seen[stripped]; ok {
			continue
		}

		isolated := IsIsolated(runs, i)
		score := Score(run, ctx, isolated, p)
		level, ok := ClassifyLevel(text, score, run, p)
		if !ok {
			continue
		}

		seen[lower] = struct{}{}
		seen[stripped] = struct{}{}
		accepted = append(accepted, outline.Heading{Level: level, Text: text, Page: run.PageNum})
	}

	// Shallower levels list first within a page, regardless of the
	// physical order the runs arrived in.
	sort.SliceStable(accepted, func(a, b int) bool {
		if accepted[a].Page != accepted[b].Page {
			return accepted[a].Page < accepted[b].Page
		}
		return accepted[a].Level.Rank() < accepted[b].Level.Rank()
	})

	return Repair(accepted)
}

// ExtractStrict runs the high-precision variant: hard typographic and
// lexical gates from the profile's StrictGates instead of additive
// scoring, candidate ordering by physical position, word-overlap
// de-duplication, and a per-document cap. Profiles without strict gates
// fall back to Extract.
func ExtractStrict(runs []outline.TextRun, p *Profile) []outline.Heading {
	g := p.Strict
	if g == nil {
		return Extract(runs, p)
	}
	if len(runs) == 0 {
		return nil
	}

	ctx := Analyze(runs)
	seen := make(map[string]struct{})

	type candidate struct {
		heading outline.Heading
		top     float64
	}
	var candidates []candidate

	for _, run := range runs {
		text := strings.TrimSpace(run.Text)
		lower := strings.ToLower(text)
		if _, ok := seen[lower]; ok {
			continue
		}
		if n := runeLen(text); n < p.MinRunes || n > g.MaxRunes {
			continue
		}
		if len(strings.Fields(text)) > g.MaxWords {
			continue
		}
		if p.IsExcluded(text) {
			continue
		}

		level, ok := strictLevel(text, run, ctx, g, p)
		if !ok {
			continue
		}
		if !isTitleCase(text) && !isAllUpper(text) {
			continue
		}
		if containsAny(lower, g.RejectWords) {
			continue
		}

		seen[lower] = struct{}{}
		candidates = append(candidates, candidate{
			heading: outline.Heading{Level: level, Text: text, Page: run.PageNum},
			top:     run.TopPosition,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].heading.Page != candidates[b].heading.Page {
			return candidates[a].heading.Page < candidates[b].heading.Page
		}
		return candidates[a].top < candidates[b].top
	})

	var out []outline.Heading
	for _, c := range candidates {
		if overlapsAccepted(c.heading.Text, out) {
			continue
		}
		out = append(out, c.heading)
		if g.MaxHeadings > 0 && len(out) >= g.MaxHeadings {
			break
		}
	}
	return out
}

// strictLevel applies the strict gates in order: font-size gates, then
// the bold left-aligned gate, then the semantic pattern list.
func strictLevel(text string, run outline.TextRun, ctx Context, g *StrictGates, p *Profile) (outline.Level, bool) {
	if ctx.AvgFontSize > 0 && run.FontSize > ctx.AvgFontSize*g.SizeRatio {
		if run.FontSize > ctx.AvgFontSize*g.H1SizeRatio {
			return outline.H1, true
		}
		return outline.H2, true
	}
	if run.IsBold && run.LeftMargin <= g.BoldMaxMargin &&
		ctx.AvgFontSize > 0 && run.FontSize > ctx.AvgFontSize*g.BoldSizeRatio {
		return outline.H2, true
	}
	if level, ok := p.MatchLevel(text); ok {
		if g.H1Keywords != nil && g.H1Keywords.MatchString(text) {
			return outline.H1, true
		}
		return level, true
	}
	return "", false
}

// overlapsAccepted reports whether the candidate shares any lowercased
// word with an already-accepted heading.
func overlapsAccepted(text string, accepted []outline.Heading) bool {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}
	for _, h := range accepted {
		for _, w := range strings.Fields(strings.ToLower(h.Text)) {
			if _, ok := words[w]; ok {
				return true
			}
		}
	}
	return false
}
