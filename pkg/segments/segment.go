// Package segments tokenizes command and skill bodies into typed placeholder
// segments and renders them back in the placeholder syntax of a dialect.
// A body parsed and serialized with the same dialect reproduces the original
// text for every placeholder form the dialect natively supports.
package segments

import (
	"strconv"
	"strings"
)

// Kind identifies the type of a Segment
type Kind int

// Segment kinds
const (
	KindLiteral Kind = iota
	KindArguments
	KindArgument
	KindShell
	KindFile
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindArguments:
		return "arguments"
	case KindArgument:
		return "argument"
	case KindShell:
		return "shell"
	case KindFile:
		return "file"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Segment is one literal or placeholder unit of a parsed body.
// Text holds the literal text, the shell command or the file path depending
// on Kind. Index is only meaningful for KindArgument (1-9).
type Segment struct {
	Kind  Kind
	Text  string
	Index int
}

// Literal creates a literal text segment
func Literal(text string) Segment { return Segment{Kind: KindLiteral, Text: text} }

// Arguments creates a whole-arguments placeholder segment
func Arguments() Segment { return Segment{Kind: KindArguments} }

// Argument creates an individual positional argument placeholder segment
func Argument(index int) Segment { return Segment{Kind: KindArgument, Index: index} }

// Shell creates a shell command placeholder segment
func Shell(command string) Segment { return Segment{Kind: KindShell, Text: command} }

// File creates a file reference placeholder segment
func File(path string) Segment { return Segment{Kind: KindFile, Text: path} }

// Body is an ordered sequence of segments
type Body []Segment

// Has reports whether the body contains at least one segment of the given kind
func (b Body) Has(kind Kind) bool {
	for _, s := range b {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// PlainText concatenates the literal segments, dropping placeholders
func (b Body) PlainText() string {
	var sb strings.Builder
	for _, s := range b {
		if s.Kind == KindLiteral {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// Fallback renders a segment in the canonical dollar spelling. Dialects use
// it for kinds they cannot express so no placeholder is silently dropped.
func Fallback(s Segment) string {
	switch s.Kind {
	case KindArguments:
		return "$ARGUMENTS"
	case KindArgument:
		return "$" + strconv.Itoa(s.Index)
	case KindShell:
		return "!`" + s.Text + "`"
	case KindFile:
		return "@" + s.Text
	default:
		return s.Text
	}
}
