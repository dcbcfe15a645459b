package parser

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
)

// Plain text carries no typography, so every run gets the same synthetic
// metrics and layout is reconstructed from line position alone. Form feeds
// advance the page counter, matching pdftotext page separators.
const (
	textFontSize   = 12.0
	textLineHeight = 14.0
)

// TextParser handles plain text files.
type TextParser struct{}

func (p *TextParser) Parse(ctx context.Context, r io.Reader, filename string) (*outline.Source, error) {
	runs, err := textRuns(r)
	if err != nil {
		return nil, err
	}
	return &outline.Source{
		Title: baseName(filename),
		Runs:  runs,
	}, nil
}

// textRuns converts line-oriented text into positioned runs. Blank lines
// produce no run but still consume vertical space, so headings separated by
// empty lines keep their whitespace gap.
func textRuns(r io.Reader) ([]outline.TextRun, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var runs []outline.TextRun
	page := 1
	ordinal := 0

	for scanner.Scan() {
		for i, segment := range strings.Split(scanner.Text(), "\f") {
			if i > 0 {
				page++
				ordinal = 0
			}
			trimmed := strings.TrimSpace(segment)
			if trimmed == "" {
				ordinal++
				continue
			}
			runs = append(runs, outline.TextRun{
				Text:        trimmed,
				FontSize:    textFontSize,
				LeftMargin:  leadingIndent(segment),
				TopPosition: float64(ordinal) * textLineHeight,
				PageNum:     page,
				LineHeight:  textLineHeight,
			})
			ordinal++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// leadingIndent measures leading whitespace in points, one per space and
// four per tab.
func leadingIndent(line string) float64 {
	var indent float64
	for _, r := range line {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += 4
		default:
			return indent
		}
	}
	return indent
}
