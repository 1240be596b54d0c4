package segments

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Pattern recognises one placeholder form.
// Build receives the full match followed by the capture groups.
// When Boundary is set the match must start the text or follow whitespace
// or an opening bracket, so that e.g. "user@host" stays literal.
//
// When Close is set Expr only matches the opening delimiter and Close finds
// the rest of the placeholder, starting right after the opener. It returns
// where the enclosed text ends and where the placeholder ends. Build then
// receives the full match and the enclosed text.
type Pattern struct {
	Kind     Kind
	Expr     *regexp.Regexp
	Build    func(groups []string) Segment
	Boundary bool
	Close    func(text string, from int) (innerEnd, end int, ok bool)
}

// Renderer renders a single segment in a dialect's syntax
type Renderer func(Segment) string

// ValidatePatterns checks a pattern table and returns the first problem found
func ValidatePatterns(patterns []Pattern) error {
	for i, p := range patterns {
		if p.Expr == nil {
			return errors.Errorf("pattern %d (%s): nil expression", i, p.Kind)
		}
		if p.Build == nil {
			return errors.Errorf("pattern %d (%s): nil builder", i, p.Kind)
		}
		if p.Kind == KindLiteral {
			return errors.Errorf("pattern %d: literal text cannot be a pattern", i)
		}
		if p.Expr.MatchString("") {
			return errors.Errorf("pattern %d (%s): expression %q matches the empty string", i, p.Kind, p.Expr.String())
		}
	}
	return nil
}

type match struct {
	start, end int
	groups     []string
	none       bool
}

// find returns the first acceptable match of p at or after from
func (p Pattern) find(text string, from int) match {
	for from <= len(text) {
		loc := p.Expr.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			return match{none: true}
		}
		start, end := from+loc[0], from+loc[1]
		_, width := utf8.DecodeRuneInString(text[start:])
		if p.Boundary && !atBoundary(text, start) {
			from = start + max(width, 1)
			continue
		}
		if p.Close != nil {
			innerEnd, closeEnd, ok := p.Close(text, end)
			if !ok {
				from = start + max(width, 1)
				continue
			}
			return match{start: start, end: closeEnd, groups: []string{text[start:closeEnd], text[end:innerEnd]}}
		}
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = text[from+loc[2*g] : from+loc[2*g+1]]
			}
		}
		return match{start: start, end: end, groups: groups}
	}
	return match{none: true}
}

// CloseBrace finds the "}" balancing a "{" that ends just before from,
// counting nested pairs. The enclosed text must be non-empty and stay on
// one line.
func CloseBrace(text string, from int) (innerEnd, end int, ok bool) {
	depth := 1
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '\n':
			return 0, 0, false
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, i + 1, i > from
			}
		}
	}
	return 0, 0, false
}

func atBoundary(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return unicode.IsSpace(r) || strings.ContainsRune("([{\"'", r)
}

// Parse tokenizes text with the ordered pattern table. At every scan
// position the earliest match wins; when two patterns match at the same
// position the one declared first wins. Unmatched spans become literal
// segments and empty input yields an empty body.
func Parse(text string, patterns []Pattern) Body {
	body := Body{}
	if text == "" {
		return body
	}

	cache := make([]*match, len(patterns))
	pos, literalStart := 0, 0

	for pos <= len(text) {
		best := -1
		for i, p := range patterns {
			m := cache[i]
			if m == nil || (!m.none && m.start < pos) {
				found := p.find(text, pos)
				m = &found
				cache[i] = m
			}
			if m.none {
				continue
			}
			if best == -1 || m.start < cache[best].start {
				best = i
			}
		}
		if best == -1 {
			break
		}

		m := cache[best]
		if m.start > literalStart {
			body = append(body, Literal(text[literalStart:m.start]))
		}
		body = append(body, patterns[best].Build(m.groups))
		pos, literalStart = m.end, m.end
	}

	if literalStart < len(text) {
		body = append(body, Literal(text[literalStart:]))
	}
	return body
}

// Serialize renders every segment through its renderer. Segments whose kind
// is unsupported, or has no renderer, render through Fallback.
func Serialize(body Body, renderers map[Kind]Renderer, unsupported map[Kind]bool) string {
	var sb strings.Builder
	for _, s := range body {
		if s.Kind == KindLiteral {
			sb.WriteString(s.Text)
			continue
		}
		render, ok := renderers[s.Kind]
		if !ok || unsupported[s.Kind] {
			render = Fallback
		}
		sb.WriteString(render(s))
	}
	return sb.String()
}
