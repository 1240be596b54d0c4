package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkdown(t *testing.T) {
	content := `---
description: Review a pull request
allowed-tools:
  - Read
  - Grep
hooks:
  pre: echo start
  post: echo done
---

Review $ARGUMENTS carefully.
`
	meta, body, err := ParseMarkdown(content)
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, []string{"description", "allowed-tools", "hooks"}, meta.Keys())
	assert.Equal(t, "Review a pull request", meta.GetString("description"))
	assert.Equal(t, []any{"Read", "Grep"}, meta.ToMap()["allowed-tools"])

	hooks, ok := meta.GetMetadata("hooks")
	require.True(t, ok)
	assert.Equal(t, []string{"pre", "post"}, hooks.Keys())

	assert.Equal(t, "Review $ARGUMENTS carefully.\n", body)
}

func TestParseMarkdown_NoFrontmatter(t *testing.T) {
	meta, body, err := ParseMarkdown("# Title\n\nJust a body\n")
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, "# Title\n\nJust a body\n", body)
}

func TestParseMarkdown_EmptyFrontmatter(t *testing.T) {
	meta, body, err := ParseMarkdown("---\n---\nbody")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, 0, meta.Len())
	assert.Equal(t, "body", body)
}

func TestParseMarkdown_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"unterminated", "---\nname: x\nbody without closing", "unterminated frontmatter"},
		{"invalid yaml", "---\nname: [unclosed\n---\nbody", "invalid frontmatter"},
		{"not a mapping", "---\n- a\n- b\n---\nbody", "expected a mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseMarkdown(tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestFormatMarkdown(t *testing.T) {
	meta := NewMetadata()
	meta.Set("name", "pdf-tools")
	meta.Set("description", "Work with PDF files")
	meta.Set("allowed-tools", []string{"Read", "Bash"})

	out, err := FormatMarkdown(meta, "Use the scripts.\n")
	require.NoError(t, err)
	assert.Equal(t, `---
name: pdf-tools
description: Work with PDF files
allowed-tools:
  - Read
  - Bash
---

Use the scripts.
`, out)
}

func TestFormatMarkdown_NilMetadata(t *testing.T) {
	out, err := FormatMarkdown(nil, "body only\n")
	require.NoError(t, err)
	assert.Equal(t, "body only\n", out)
}

func TestMarkdownRoundTrip(t *testing.T) {
	content := `---
description: Deploy
model: sonnet
nested:
  zeta: 1
  alpha: true
---

Deploy $1 now.
`
	meta, body, err := ParseMarkdown(content)
	require.NoError(t, err)

	out, err := FormatMarkdown(meta, body)
	require.NoError(t, err)
	assert.Equal(t, content, out)
}

func TestMarkdownRoundTrip_KeepsScalarSpelling(t *testing.T) {
	content := `---
created: 2024-01-01
updated: 2024-01-02T10:30:00Z
version: 1.0
mask: 0x1F
enabled: True
retries: 3
---

body
`
	meta, body, err := ParseMarkdown(content)
	require.NoError(t, err)

	retries, _ := meta.Get("retries")
	assert.Equal(t, 3, retries)

	out, err := FormatMarkdown(meta, body)
	require.NoError(t, err)
	assert.Equal(t, content, out)
}
