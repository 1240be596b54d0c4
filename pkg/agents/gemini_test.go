package agents

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/jingkaihe/chimera/pkg/segments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiAdapter_CommandRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.toml")
	writeFile(t, path, `description = "Build it"
custom = 3
prompt = """
Run !{make} with {{args}}
"""
`)

	gemini := NewRegistry().MustGet(ir.Gemini)
	doc, err := gemini.Parse(document.Command, path)
	require.NoError(t, err)
	assert.Equal(t, "Run !{make} with {{args}}\n", doc.Body)
	assert.Equal(t, []string{"description", "custom"}, doc.Metadata.Keys())
	require.NoError(t, gemini.Validate(doc))

	semantic, err := gemini.ToIR(doc, ToIROptions{})
	require.NoError(t, err)
	assert.Equal(t, "Build it", semantic.Semantic.Description)
	assert.Equal(t, []string{"custom"}, semantic.Extras.Keys())
	assert.True(t, semantic.Body.Has(segments.KindShell))
	assert.True(t, semantic.Body.Has(segments.KindArguments))

	out, err := gemini.FromIR(semantic, FromIROptions{})
	require.NoError(t, err)
	text, err := gemini.Stringify(out)
	require.NoError(t, err)

	decoded, err := document.DecodeTOML([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, []string{"description", "custom", "prompt"}, decoded.Keys())
	assert.Equal(t, "Run !{make} with {{args}}\n", decoded.GetString("prompt"))
}

func TestGeminiAdapter_FromDollarDialect(t *testing.T) {
	registry := NewRegistry()
	claude := registry.MustGet(ir.Claude)
	gemini := registry.MustGet(ir.Gemini)

	doc := &document.Document{
		Type:     document.Command,
		Path:     "/c/fix.md",
		Metadata: metaOf("description", "Fix", "prompt", "legacy"),
		Body:     "Fix $1 using !`make` and $ARGUMENTS",
	}
	semantic, err := claude.ToIR(doc, ToIROptions{DestinationType: ir.Gemini})
	require.NoError(t, err)

	out, err := gemini.FromIR(semantic, FromIROptions{})
	require.NoError(t, err)
	assert.Equal(t, "Fix $1 using !{make} and {{args}}", out.Body)
	assert.Equal(t, "legacy", out.Metadata.GetString("x-prompt"))
	assert.False(t, out.Metadata.Has("prompt"))

	text, err := gemini.Stringify(out)
	require.NoError(t, err)
	decoded, err := document.DecodeTOML([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, "Fix $1 using !{make} and {{args}}", decoded.GetString("prompt"))
	assert.Equal(t, "legacy", decoded.GetString("x-prompt"))
}

func TestGeminiAdapter_ParseErrors(t *testing.T) {
	gemini := NewRegistry().MustGet(ir.Gemini)

	tests := []struct {
		name    string
		content string
		message string
	}{
		{"missing prompt", "description = \"x\"\n", "missing required"},
		{"prompt not a string", "prompt = 3\n", "must be a string"},
		{"invalid toml", "prompt = \n", "invalid TOML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cmd.toml")
			writeFile(t, path, tt.content)

			_, err := gemini.Parse(document.Command, path)
			require.Error(t, err)
			assert.True(t, document.IsParseError(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestGeminiAdapter_Stringify(t *testing.T) {
	gemini := NewRegistry().MustGet(ir.Gemini)

	t.Run("blank description omitted", func(t *testing.T) {
		text, err := gemini.Stringify(&document.Document{
			Type:     document.Command,
			Metadata: metaOf("description", "  ", "custom", "x"),
			Body:     "Do it",
		})
		require.NoError(t, err)
		assert.NotContains(t, text, "description")
		assert.Contains(t, text, "custom")
	})

	t.Run("prompt precedes tables", func(t *testing.T) {
		text, err := gemini.Stringify(&document.Document{
			Type:     document.Command,
			Metadata: metaOf("extra", metaOf("k", "v"), "custom", "x"),
			Body:     "Do it",
		})
		require.NoError(t, err)
		custom := strings.Index(text, "custom")
		prompt := strings.Index(text, "prompt")
		table := strings.Index(text, "[extra]")
		require.True(t, custom >= 0 && prompt >= 0 && table >= 0, text)
		assert.Less(t, custom, prompt)
		assert.Less(t, prompt, table)
	})

	t.Run("no metadata", func(t *testing.T) {
		text, err := gemini.Stringify(&document.Document{Type: document.Command, Body: "Do it"})
		require.NoError(t, err)
		decoded, err := document.DecodeTOML([]byte(text))
		require.NoError(t, err)
		assert.Equal(t, []string{"prompt"}, decoded.Keys())
	})
}

func TestGeminiAdapter_ValidateNamesPrompt(t *testing.T) {
	gemini := NewRegistry().MustGet(ir.Gemini)
	err := gemini.Validate(&document.Document{Type: document.Command, Path: "/c/x.toml", Body: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt: content is required")
}

func TestGeminiAdapter_Skill(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pdf")
	writeFile(t, filepath.Join(dir, document.SkillFileName), "---\nname: pdf\ndescription: PDF tools\n---\n\nLoad @{forms.md}\n")

	gemini := NewRegistry().MustGet(ir.Gemini)
	doc, err := gemini.Parse(document.Skill, dir)
	require.NoError(t, err)
	require.NoError(t, gemini.Validate(doc))

	text, err := gemini.Stringify(doc)
	require.NoError(t, err)
	assert.Equal(t, "---\nname: pdf\ndescription: PDF tools\n---\n\nLoad @{forms.md}\n", text)
}
