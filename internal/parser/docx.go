package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
	"github.com/fumiama/go-docx"
)

// DOCX carries no pagination or glyph geometry before layout, so every
// paragraph lands on page 1 at an ordinal vertical position. Word marks
// headings through named paragraph styles; styled paragraphs get synthetic
// typography scaled by level so the classifier sees them the same way it
// sees oversized print in a PDF.
const (
	docxBodySize   = 11.0
	docxLineHeight = 14.0
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(ctx context.Context, r io.Reader, filename string) (*outline.Source, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docline-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	src := &outline.Source{Title: baseName(filename)}
	titled := false
	ordinal := 0
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			// Empty paragraphs still take up a line, which keeps the
			// whitespace gap around spaced-out headings visible.
			ordinal++
			continue
		}

		level := docxHeadingLevel(para)
		if level > 0 && !titled {
			src.Title = text
			titled = true
		}
		src.Runs = append(src.Runs, outline.TextRun{
			Text:        text,
			FontSize:    docxFontSize(level),
			IsBold:      level > 0,
			TopPosition: float64(ordinal) * docxLineHeight,
			PageNum:     1,
			LineHeight:  docxLineHeight,
		})
		ordinal++
	}
	return src, nil
}

// docxHeadingLevel reads the paragraph style name, accepting both the
// "Heading1" and "heading 1" spellings Word and its imitators produce.
func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	rest, ok := strings.CutPrefix(style, "heading")
	if !ok {
		return 0
	}
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

// docxFontSize assigns the synthetic size for a heading level, with the
// Word default body size for unstyled paragraphs.
func docxFontSize(level int) float64 {
	switch level {
	case 0:
		return docxBodySize
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 13
	default:
		return 12
	}
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
