package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Heading tags are an explicit outline, so
// no layout reconstruction is needed; h4 and deeper clamp to the third
// level.
type HTMLParser struct{}

func (p *HTMLParser) Parse(ctx context.Context, r io.Reader, filename string) (*outline.Source, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	src := &outline.Source{Title: baseName(filename)}
	if title := findTitle(doc); title != "" {
		src.Title = title
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if text := textContent(n); text != "" {
					src.Outline = append(src.Outline, outline.Heading{
						Level: outline.ForRank(level),
						Text:  text,
						Page:  1,
					})
				}
				return
			}
			// Skip non-content elements; boilerplate chrome repeats its
			// headings on every page of a site.
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return src, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// textContent flattens an element's text nodes, collapsing internal
// whitespace so multi-line markup reads as one line.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
