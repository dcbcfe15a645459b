package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
	pdflib "github.com/ledongthuc/pdf"
)

// PDF geometry is bottom-up, so extracted Y coordinates are flipped against
// the page height. Spans whose Y sits within rowTolerance of a line's first
// span belong to that line; a horizontal gap wider than wordGapFactor times
// the font size reads as a word break.
const (
	letterHeight  = 792.0
	rowTolerance  = 2.5
	wordGapFactor = 0.3
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if available.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(ctx context.Context, r io.Reader, filename string) (*outline.Source, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docline-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	runs, err := extractPDFRuns(tmpPath)
	if err != nil && p.FallbackPdftotext {
		runs, err = extractPdftotext(ctx, tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return &outline.Source{
		Title: baseName(filename),
		Runs:  runs,
	}, nil
}

func extractPDFRuns(path string) ([]outline.TextRun, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var runs []outline.TextRun
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		runs = append(runs, pageRuns(page, i)...)
	}
	return runs, nil
}

// pageRuns flattens one page's text spans into line-level runs.
func pageRuns(page pdflib.Page, pageNum int) []outline.TextRun {
	texts := page.Content().Text
	if len(texts) == 0 {
		return nil
	}
	height := mediaBoxHeight(page)

	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	var runs []outline.TextRun
	start := 0
	for i := 1; i <= len(texts); i++ {
		if i < len(texts) && texts[start].Y-texts[i].Y <= rowTolerance {
			continue
		}
		if run, ok := lineRun(texts[start:i], height, pageNum); ok {
			runs = append(runs, run)
		}
		start = i
	}
	return runs
}

// lineRun joins one line's spans left to right into a single run, taking
// the largest span's font as the line font.
func lineRun(spans []pdflib.Text, pageHeight float64, pageNum int) (outline.TextRun, bool) {
	ordered := make([]pdflib.Text, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].X < ordered[j].X
	})

	var (
		buf      strings.Builder
		fontSize float64
		fontName string
		prevEnd  float64
	)
	left := ordered[0].X
	for i, s := range ordered {
		if s.FontSize > fontSize {
			fontSize = s.FontSize
			fontName = s.Font
		}
		if s.X < left {
			left = s.X
		}
		gapSize := s.FontSize
		if gapSize == 0 {
			gapSize = textFontSize
		}
		if i > 0 && s.X-prevEnd > wordGapFactor*gapSize {
			buf.WriteString(" ")
		}
		buf.WriteString(s.S)
		prevEnd = s.X + s.W
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return outline.TextRun{}, false
	}
	if fontSize == 0 {
		fontSize = textFontSize
	}
	return outline.TextRun{
		Text:        text,
		FontSize:    fontSize,
		FontName:    fontName,
		IsBold:      boldFont(fontName),
		IsItalic:    italicFont(fontName),
		LeftMargin:  left,
		TopPosition: pageHeight - spans[0].Y,
		PageNum:     pageNum,
		LineHeight:  fontSize,
	}, true
}

// mediaBoxHeight reads the page height from the MediaBox, defaulting to US
// Letter when the box is missing or malformed.
func mediaBoxHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Kind() == pdflib.Array && box.Len() >= 4 {
		if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return letterHeight
}

func boldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}

func italicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}

func extractPdftotext(ctx context.Context, path string) ([]outline.TextRun, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return textRuns(bytes.NewReader(out))
}
