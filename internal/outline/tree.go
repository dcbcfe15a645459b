package outline

import (
	"fmt"
	"strings"
)

// TOCNode is a heading with its nested subsections.
type TOCNode struct {
	Heading  Heading    `json:"heading"`
	Children []*TOCNode `json:"children,omitempty"`
}

// BuildTree nests a flat heading sequence by level rank. A heading deeper
// than the one before it becomes a child; an equal or shallower heading
// pops back to the matching depth. Input order is preserved.
func BuildTree(headings []Heading) []*TOCNode {
	var roots []*TOCNode
	var stack []*TOCNode

	for _, h := range headings {
		node := &TOCNode{Heading: h}
		for len(stack) > 0 && stack[len(stack)-1].Heading.Level.Rank() >= h.Level.Rank() {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}

// MarkdownTOC renders a tree as a markdown bullet list, two spaces of
// indent per depth, one entry per heading with its page number.
func MarkdownTOC(nodes []*TOCNode) string {
	var b strings.Builder
	writeTOC(&b, nodes, 0)
	return b.String()
}

func writeTOC(b *strings.Builder, nodes []*TOCNode, depth int) {
	for _, n := range nodes {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(b, "- %s (p.%d)\n", n.Heading.Text, n.Heading.Page)
		writeTOC(b, n.Children, depth+1)
	}
}
