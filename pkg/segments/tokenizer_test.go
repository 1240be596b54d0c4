package segments

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Dollar(t *testing.T) {
	body := Dollar.Parse("Run !`git status` with $ARGUMENTS and load @config.json for user $1")

	expected := Body{
		Literal("Run "),
		Shell("git status"),
		Literal(" with "),
		Arguments(),
		Literal(" and load "),
		File("config.json"),
		Literal(" for user "),
		Argument(1),
	}
	assert.Equal(t, expected, body)
}

func TestSerialize_DollarToBrace(t *testing.T) {
	body := Dollar.Parse("Run !`git status` with $ARGUMENTS and load @config.json for user $1")
	assert.Equal(t, "Run !{git status} with {{args}} and load @{config.json} for user $1", Brace.Serialize(body))
}

func TestParse_EmptyInput(t *testing.T) {
	body := Dollar.Parse("")
	assert.NotNil(t, body)
	assert.Empty(t, body)
}

func TestParse_NoPlaceholders(t *testing.T) {
	body := Brace.Parse("just some text")
	assert.Equal(t, Body{Literal("just some text")}, body)
}

func TestParse_FileReferenceNeedsBoundary(t *testing.T) {
	body := Dollar.Parse("mail user@example.com then read @docs/guide.md.")
	assert.Equal(t, Body{
		Literal("mail user@example.com then read "),
		File("docs/guide.md"),
		Literal("."),
	}, body)
}

func TestParse_DeclarationOrderBreaksTies(t *testing.T) {
	patterns := []Pattern{
		{Kind: KindArguments, Expr: regexp.MustCompile(`\$ARGS`), Build: func([]string) Segment { return Arguments() }},
		{Kind: KindShell, Expr: regexp.MustCompile(`\$[A-Z]+`), Build: func(g []string) Segment { return Shell(g[0]) }},
	}

	body := Parse("x $ARGS y $HOME", patterns)
	assert.Equal(t, Body{
		Literal("x "),
		Arguments(),
		Literal(" y "),
		Shell("$HOME"),
	}, body)
}

func TestRoundTrip_SameDialect(t *testing.T) {
	tests := []struct {
		name    string
		dialect *Dialect
		text    string
	}{
		{"dollar all forms", Dollar, "Review $ARGUMENTS.\n\n!`git diff --staged`\n\nSee @README.md and $2 then $9"},
		{"dollar adjacent placeholders", Dollar, "$1$2$ARGUMENTS!`ls`"},
		{"brace all forms", Brace, "Review {{args}}\n!{git log -n 5}\n@{src/main.go}"},
		{"codex", Codex, "Fix issue $1 using $ARGUMENTS"},
		{"unicode text", Dollar, "héllo wörld @café/menu.txt $1 ✓"},
		{"unterminated shell", Dollar, "broken !`git status"},
		{"unterminated brace", Brace, "broken !{git status and {{arg}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, tt.dialect.Serialize(tt.dialect.Parse(tt.text)))
		})
	}
}

func TestRoundTrip_CrossDialect(t *testing.T) {
	texts := []string{
		"Run !`make test` against $ARGUMENTS",
		"Summarise @notes/todo.md",
		"plain text only",
		"Run !`awk '{print $1}'` now",
	}

	for _, text := range texts {
		viaBrace := Dollar.Serialize(Brace.Parse(Brace.Serialize(Dollar.Parse(text))))
		assert.Equal(t, text, viaBrace)
	}
}

func TestParse_BraceNesting(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Body
	}{
		{"nested pair", "Run !{awk '{print $1}'} now", Body{Literal("Run "), Shell("awk '{print $1}'"), Literal(" now")}},
		{"two levels", "!{jq '{a: {b: .c}}' x.json}", Body{Shell("jq '{a: {b: .c}}' x.json")}},
		{"unbalanced", "!{echo {oops}", Body{Literal("!{echo {oops}")}},
		{"empty", "!{} then @{a.md}", Body{Literal("!{} then "), File("a.md")}},
		{"line break", "!{echo\n}", Body{Literal("!{echo\n}")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Brace.Parse(tt.text))
		})
	}
}

func TestSerialize_UnsupportedUsesFallback(t *testing.T) {
	body := Body{Literal("run "), Shell("ls"), Literal(" on "), File("a.txt"), Literal(" "), Argument(3)}

	assert.Equal(t, "run !`ls` on @a.txt $3", Codex.Serialize(body))
	assert.False(t, Codex.Supports(KindShell))
	assert.True(t, Codex.Supports(KindArgument))
	assert.False(t, Brace.Supports(KindArgument))
}

func TestRemap(t *testing.T) {
	assert.Equal(t, "use {{args}}", Remap("use $ARGUMENTS", Dollar, Brace))
	assert.Equal(t, "keep {{args}} as is", Remap("keep {{args}} as is", Dollar, Dollar))
}

func TestNewDialect_PanicsOnMalformedTable(t *testing.T) {
	t.Run("nil expression", func(t *testing.T) {
		assert.Panics(t, func() {
			NewDialect("bad", []Pattern{{Kind: KindShell, Build: func([]string) Segment { return Shell("") }}},
				map[Kind]Renderer{KindShell: Fallback})
		})
	})

	t.Run("empty match", func(t *testing.T) {
		assert.Panics(t, func() {
			NewDialect("bad", []Pattern{{Kind: KindShell, Expr: regexp.MustCompile(`x*`), Build: func([]string) Segment { return Shell("") }}},
				map[Kind]Renderer{KindShell: Fallback})
		})
	})

	t.Run("missing renderer", func(t *testing.T) {
		assert.Panics(t, func() {
			NewDialect("bad", []Pattern{{Kind: KindShell, Expr: regexp.MustCompile(`!x`), Build: func([]string) Segment { return Shell("") }}},
				map[Kind]Renderer{})
		})
	})
}

func TestValidatePatterns(t *testing.T) {
	err := ValidatePatterns([]Pattern{{Kind: KindLiteral, Expr: regexp.MustCompile(`a`), Build: func([]string) Segment { return Literal("a") }}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "literal")
}

func TestBody_Helpers(t *testing.T) {
	body := Dollar.Parse("Hello $1, see @a.md")
	assert.True(t, body.Has(KindArgument))
	assert.False(t, body.Has(KindShell))
	assert.Equal(t, "Hello , see ", body.PlainText())
	assert.Equal(t, "argument", KindArgument.String())
}
