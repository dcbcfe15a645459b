package parser

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/docline/internal/outline"
)

func TestMarkdownParser_HeadingOutline(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	src, err := p.Parse(context.Background(), strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.Title != "Title" {
		t.Errorf("expected title %q, got %q", "Title", src.Title)
	}

	want := []outline.Heading{
		{Level: outline.H1, Text: "Title", Page: 1},
		{Level: outline.H2, Text: "Section A", Page: 1},
		{Level: outline.H3, Text: "Subsection A1", Page: 1},
		{Level: outline.H2, Text: "Section B", Page: 1},
	}
	if !reflect.DeepEqual(src.Outline, want) {
		t.Errorf("expected outline %+v, got %+v", want, src.Outline)
	}
	if len(src.Runs) != 0 {
		t.Errorf("expected no runs for markdown, got %d", len(src.Runs))
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	src, err := p.Parse(context.Background(), strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.Title != "plain" {
		t.Errorf("expected filename title %q, got %q", "plain", src.Title)
	}
	if len(src.Outline) != 0 {
		t.Errorf("expected empty outline, got %+v", src.Outline)
	}
}

func TestMarkdownParser_DeepHeadingsClampToH3(t *testing.T) {
	input := "#### Deep One\n\n##### Deeper Two\n"

	p := &MarkdownParser{}
	src, err := p.Parse(context.Background(), strings.NewReader(input), "deep.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(src.Outline) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(src.Outline))
	}
	for i, h := range src.Outline {
		if h.Level != outline.H3 {
			t.Errorf("heading[%d]: expected level %s, got %s", i, outline.H3, h.Level)
		}
	}
}

func TestMarkdownParser_CodeBlockHeadingIgnored(t *testing.T) {
	input := "## Endpoints\n\n```\n# not a heading\nGET /api/users\n```\n"

	p := &MarkdownParser{}
	src, err := p.Parse(context.Background(), strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []outline.Heading{
		{Level: outline.H2, Text: "Endpoints", Page: 1},
	}
	if !reflect.DeepEqual(src.Outline, want) {
		t.Errorf("expected outline %+v, got %+v", want, src.Outline)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	src, err := p.Parse(context.Background(), strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.Outline) != 0 {
		t.Errorf("expected 0 headings for empty input, got %d", len(src.Outline))
	}
}

func TestMarkdownParser_TitleFallsBackToFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"sub/dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		src, err := p.Parse(context.Background(), strings.NewReader("text without headings"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if src.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, src.Title)
		}
	}
}
