package parser

import (
	"context"
	"io"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. ATX and setext
// headings are an explicit outline; the first top-level heading doubles as
// the document title.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(ctx context.Context, r io.Reader, filename string) (*outline.Source, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	out := &outline.Source{Title: baseName(filename)}
	titled := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(string(h.Text(src)))
		if title == "" {
			continue
		}
		if h.Level == 1 && !titled {
			out.Title = title
			titled = true
		}
		out.Outline = append(out.Outline, outline.Heading{
			Level: outline.ForRank(h.Level),
			Text:  title,
			Page:  1,
		})
	}

	return out, nil
}
