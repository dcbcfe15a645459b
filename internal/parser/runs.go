package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
)

// RunsParser loads a pre-positioned runs dump, the interchange format for
// upstream extractors that have already done their own layout analysis.
type RunsParser struct{}

type runsDocument struct {
	Title string            `json:"title"`
	Runs  []outline.TextRun `json:"runs"`
}

func (p *RunsParser) Parse(ctx context.Context, r io.Reader, filename string) (*outline.Source, error) {
	var doc runsDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode runs json: %w", err)
	}
	if len(doc.Runs) == 0 {
		return nil, fmt.Errorf("runs json: no runs")
	}

	// Dumps from minimal extractors often omit pages and line heights.
	for i := range doc.Runs {
		if doc.Runs[i].PageNum < 1 {
			doc.Runs[i].PageNum = 1
		}
		if doc.Runs[i].LineHeight <= 0 {
			doc.Runs[i].LineHeight = doc.Runs[i].FontSize
		}
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = baseName(filename)
	}
	return &outline.Source{
		Title: title,
		Runs:  doc.Runs,
	}, nil
}
