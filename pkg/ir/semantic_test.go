package ir

import (
	"testing"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemantic_SetWeakly(t *testing.T) {
	var s Semantic

	require.NoError(t, s.Set(FieldName, "review", false))
	require.NoError(t, s.Set(FieldModel, 4, false))
	require.NoError(t, s.Set(FieldDisableModelInvocation, "true", false))
	require.NoError(t, s.Set(FieldDescription, nil, false))

	assert.Equal(t, "review", s.Name)
	assert.Equal(t, "4", s.Model)
	require.NotNil(t, s.DisableModelInvocation)
	assert.True(t, *s.DisableModelInvocation)
	assert.False(t, s.Has(FieldDescription))

	err := s.Set(FieldName, map[string]any{"a": 1}, false)
	assert.Error(t, err)
}

func TestSemantic_SetLiteral(t *testing.T) {
	var s Semantic

	require.NoError(t, s.Set(FieldModel, document.Literal{Tag: "!!float", Text: "1.0"}, false))
	require.NoError(t, s.Set(FieldDisableModelInvocation, document.Literal{Tag: "!!bool", Text: "True"}, false))

	assert.Equal(t, "1.0", s.Model)
	require.NotNil(t, s.DisableModelInvocation)
	assert.True(t, *s.DisableModelInvocation)
}

func TestSemantic_Polarity(t *testing.T) {
	var s Semantic
	// allow_implicit_invocation: true is the opposite of disable-model-invocation
	require.NoError(t, s.Set(FieldDisableModelInvocation, true, true))
	require.NotNil(t, s.DisableModelInvocation)
	assert.False(t, *s.DisableModelInvocation)

	v, ok := s.Value(FieldDisableModelInvocation, false)
	require.True(t, ok)
	assert.Equal(t, false, v)

	v, ok = s.Value(FieldDisableModelInvocation, true)
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestSemantic_AllowedTools(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected []string
	}{
		{"list", []any{"Read", "Bash(git:*)"}, []string{"Read", "Bash(git:*)"}},
		{"comma string", "Read, Write ,,Grep", []string{"Read", "Write", "Grep"}},
		{"empty string", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Semantic
			require.NoError(t, s.Set(FieldAllowedTools, tt.raw, false))
			assert.Equal(t, tt.expected, s.AllowedTools)
		})
	}

	var s Semantic
	s.AllowedTools = []string{"Read"}
	v, ok := s.Value(FieldAllowedTools, false)
	require.True(t, ok)
	v.([]string)[0] = "Write"
	assert.Equal(t, []string{"Read"}, s.AllowedTools)
}

func TestSemantic_Provenance(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected string
	}{
		{"scalar", "owner/repo", "owner/repo"},
		{"legacy array", []any{"owner/repo", "other/repo"}, "owner/repo"},
		{"string array", []string{"owner/repo"}, "owner/repo"},
		{"empty array", []any{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Semantic{Source: "stale"}
			require.NoError(t, s.Set(FieldSource, tt.raw, false))
			assert.Equal(t, tt.expected, s.Source)
		})
	}
}

func TestSemantic_Clear(t *testing.T) {
	yes := true
	s := Semantic{Name: "x", AllowedTools: []string{"Read"}, DisableModelInvocation: &yes}
	for _, f := range Fields {
		s.Clear(f)
		assert.False(t, s.Has(f), f.String())
	}
	assert.Equal(t, Semantic{}, s)
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "argumentHint", FieldArgumentHint.String())
	assert.Equal(t, "unknown", Field(99).String())
}
