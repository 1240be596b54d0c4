package segments

import (
	"fmt"
	"regexp"
	"strconv"
)

// Dialect is the placeholder notation of one agent
type Dialect struct {
	name        string
	patterns    []Pattern
	renderers   map[Kind]Renderer
	unsupported map[Kind]bool
}

// NewDialect builds a dialect from an ordered pattern table and its renderers.
// Kinds listed as unsupported render through Fallback. It panics on a
// malformed table: every supported kind needs a renderer and every pattern
// must be well formed.
func NewDialect(name string, patterns []Pattern, renderers map[Kind]Renderer, unsupported ...Kind) *Dialect {
	if err := ValidatePatterns(patterns); err != nil {
		panic(fmt.Sprintf("segments: dialect %q: %v", name, err))
	}

	d := &Dialect{
		name:        name,
		patterns:    append([]Pattern(nil), patterns...),
		renderers:   make(map[Kind]Renderer, len(renderers)),
		unsupported: make(map[Kind]bool, len(unsupported)),
	}
	for _, k := range unsupported {
		d.unsupported[k] = true
	}
	for k, r := range renderers {
		if r == nil {
			panic(fmt.Sprintf("segments: dialect %q: nil renderer for %s", name, k))
		}
		d.renderers[k] = r
	}
	for _, p := range patterns {
		if d.unsupported[p.Kind] {
			panic(fmt.Sprintf("segments: dialect %q: pattern for unsupported kind %s", name, p.Kind))
		}
		if _, ok := d.renderers[p.Kind]; !ok {
			panic(fmt.Sprintf("segments: dialect %q: no renderer for %s", name, p.Kind))
		}
	}
	return d
}

// Name returns the dialect name
func (d *Dialect) Name() string { return d.name }

// Supports reports whether the dialect natively expresses the kind
func (d *Dialect) Supports(kind Kind) bool {
	if kind == KindLiteral {
		return true
	}
	_, ok := d.renderers[kind]
	return ok && !d.unsupported[kind]
}

// Parse tokenizes text with the dialect's pattern table
func (d *Dialect) Parse(text string) Body {
	return Parse(text, d.patterns)
}

// Serialize renders the body in the dialect's syntax
func (d *Dialect) Serialize(body Body) string {
	return Serialize(body, d.renderers, d.unsupported)
}

// Remap rewrites the placeholders of text from one dialect to another.
// Text is returned untouched when both dialects are the same.
func Remap(text string, from, to *Dialect) string {
	if from == nil || to == nil || from.name == to.name {
		return text
	}
	return to.Serialize(from.Parse(text))
}

func indexed(groups []string) Segment {
	n, _ := strconv.Atoi(groups[1])
	return Argument(n)
}

var (
	// Dollar is the notation shared by claude, opencode and the chimera hub:
	// $ARGUMENTS, $1-$9, !`command` and @path.
	Dollar = NewDialect("dollar",
		[]Pattern{
			{Kind: KindArguments, Expr: regexp.MustCompile(`\$ARGUMENTS`), Build: func([]string) Segment { return Arguments() }},
			{Kind: KindArgument, Expr: regexp.MustCompile(`\$([1-9])`), Build: indexed},
			{Kind: KindShell, Expr: regexp.MustCompile("!`([^`\n]+)`"), Build: func(g []string) Segment { return Shell(g[1]) }},
			{Kind: KindFile, Expr: regexp.MustCompile(`@([A-Za-z0-9_~./-]*[A-Za-z0-9_/-])`), Build: func(g []string) Segment { return File(g[1]) }, Boundary: true},
		},
		map[Kind]Renderer{
			KindArguments: Fallback,
			KindArgument:  Fallback,
			KindShell:     Fallback,
			KindFile:      Fallback,
		},
	)

	// Brace is the gemini notation: {{args}}, !{command} and @{path}.
	// Commands and paths may contain balanced braces, e.g. !{awk '{print $1}'}.
	// Positional arguments have no equivalent and keep their dollar spelling.
	Brace = NewDialect("brace",
		[]Pattern{
			{Kind: KindArguments, Expr: regexp.MustCompile(`\{\{args\}\}`), Build: func([]string) Segment { return Arguments() }},
			{Kind: KindShell, Expr: regexp.MustCompile(`!\{`), Close: CloseBrace, Build: func(g []string) Segment { return Shell(g[1]) }},
			{Kind: KindFile, Expr: regexp.MustCompile(`@\{`), Close: CloseBrace, Build: func(g []string) Segment { return File(g[1]) }},
		},
		map[Kind]Renderer{
			KindArguments: func(Segment) string { return "{{args}}" },
			KindShell:     func(s Segment) string { return "!{" + s.Text + "}" },
			KindFile:      func(s Segment) string { return "@{" + s.Text + "}" },
		},
		KindArgument,
	)

	// Codex understands $ARGUMENTS and $1-$9 only.
	Codex = NewDialect("codex",
		[]Pattern{
			{Kind: KindArguments, Expr: regexp.MustCompile(`\$ARGUMENTS`), Build: func([]string) Segment { return Arguments() }},
			{Kind: KindArgument, Expr: regexp.MustCompile(`\$([1-9])`), Build: indexed},
		},
		map[Kind]Renderer{
			KindArguments: Fallback,
			KindArgument:  Fallback,
		},
		KindShell, KindFile,
	)
)
