package document

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const maxSummaryLength = 200

// Summary derives a one-line description from a markdown body: the first
// paragraph, or the first heading when the body has no paragraph
func Summary(body string) string {
	src := []byte(body)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var paragraph, heading string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindParagraph:
			paragraph = nodeText(n, src)
			return ast.WalkStop, nil
		case ast.KindHeading:
			if heading == "" {
				heading = nodeText(n, src)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	summary := paragraph
	if summary == "" {
		summary = heading
	}
	return truncate(summary, maxSummaryLength)
}

func nodeText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		if line := strings.TrimSpace(string(segment.Value(src))); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
