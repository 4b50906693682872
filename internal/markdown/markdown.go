// Package markdown holds the little markdown knowledge wikibook needs: the
// GitHub wiki syntax rewrite applied to every topic, and extraction of a
// topic's leading summary paragraph.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a Markdown body into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	md := goldmark.New()
	return md.Parser().Parse(text.NewReader(body))
}

// ExtractSummary returns the literal text of the paragraph that opens the
// document, or "" when the first block is anything else.
//
// Only a paragraph that is the very first block qualifies: a document that starts
// with a heading has no summary, even when a paragraph follows the heading.
// Reference definitions are not blocks, so a paragraph that follows them still
// counts as first.
func ExtractSummary(topicText string) string {
	src := []byte(topicText)
	root := ParseBody(src)

	para, ok := root.FirstChild().(*gmast.Paragraph)
	if !ok {
		return ""
	}

	var b strings.Builder
	lines := para.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSpace(b.String())
}
