package heading

import (
	"sort"

	"github.com/dgallion1/docline/internal/outline"
)

// Context is the document-wide statistics snapshot the scorer reads.
// The zero Context (no runs) yields no headings downstream.
type Context struct {
	AvgFontSize   float64
	MaxFontSize   float64
	MinFontSize   float64
	MinLeftMargin float64
	MaxLeftMargin float64

	// Up to 3 most frequent font sizes, descending frequency, ties broken
	// by encounter order.
	CommonFontSizes []float64
}

// Analyze computes document statistics in one pass over the runs.
func Analyze(runs []outline.TextRun) Context {
	if len(runs) == 0 {
		return Context{}
	}

	ctx := Context{
		MaxFontSize:   runs[0].FontSize,
		MinFontSize:   runs[0].FontSize,
		MinLeftMargin: runs[0].LeftMargin,
		MaxLeftMargin: runs[0].LeftMargin,
	}
	var sum float64
	counts := make(map[float64]int)
	var order []float64

	for _, r := range runs {
		sum += r.FontSize
		if r.FontSize > ctx.MaxFontSize {
			ctx.MaxFontSize = r.FontSize
		}
		if r.FontSize < ctx.MinFontSize {
			ctx.MinFontSize = r.FontSize
		}
		if r.LeftMargin < ctx.MinLeftMargin {
			ctx.MinLeftMargin = r.LeftMargin
		}
		if r.LeftMargin > ctx.MaxLeftMargin {
			ctx.MaxLeftMargin = r.LeftMargin
		}
		if counts[r.FontSize] == 0 {
			order = append(order, r.FontSize)
		}
		counts[r.FontSize]++
	}

	ctx.AvgFontSize = sum / float64(len(runs))
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > 3 {
		order = order[:3]
	}
	ctx.CommonFontSizes = order
	return ctx
}

// IsIsolated reports whether run i has generous whitespace around it or
// sits at a page boundary. The threshold is 1.2× the run's own line
// height; open space on either side alone is enough, and page-boundary
// runs always qualify. An out-of-range index is not isolated.
func IsIsolated(runs []outline.TextRun, i int) bool {
	if len(runs) == 0 || i < 0 || i >= len(runs) {
		return false
	}
	cur := runs[i]
	threshold := cur.LineHeight * 1.2

	spaceAbove := true
	if i > 0 {
		prev := runs[i-1]
		if cur.PageNum == prev.PageNum && cur.TopPosition-(prev.TopPosition+prev.LineHeight) < threshold {
			spaceAbove = false
		}
	}

	spaceBelow := true
	if i < len(runs)-1 {
		next := runs[i+1]
		if cur.PageNum == next.PageNum && next.TopPosition-(cur.TopPosition+cur.LineHeight) < threshold {
			spaceBelow = false
		}
	}

	pageEdge := i == 0 || i == len(runs)-1
	if !pageEdge && (runs[i-1].PageNum != cur.PageNum || runs[i+1].PageNum != cur.PageNum) {
		pageEdge = true
	}

	return spaceAbove || spaceBelow || pageEdge
}
