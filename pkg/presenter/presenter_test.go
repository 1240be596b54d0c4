package presenter

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	presenter := New()
	assert.NotNil(t, presenter)
	assert.Equal(t, os.Stdout, presenter.output)
	assert.Equal(t, os.Stderr, presenter.errorOutput)
	assert.False(t, presenter.quiet)
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name         string
		noColor      string
		chimeraColor string
		expected     ColorMode
	}{
		{"NO_COLOR set", "1", "", ColorNever},
		{"CHIMERA_COLOR always", "", "always", ColorAlways},
		{"CHIMERA_COLOR force", "", "force", ColorAlways},
		{"CHIMERA_COLOR never", "", "never", ColorNever},
		{"CHIMERA_COLOR off", "", "off", ColorNever},
		{"default", "", "", ColorAuto},
		{"invalid value", "", "invalid", ColorAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("CHIMERA_COLOR", tt.chimeraColor)
			assert.Equal(t, tt.expected, detectColorMode())
		})
	}
}

func TestError(t *testing.T) {
	var errorOutput bytes.Buffer
	presenter := NewWithOptions(nil, &errorOutput, ColorNever)

	presenter.Error(errors.New("test error"), "test context")
	assert.Contains(t, errorOutput.String(), "[ERROR] test context: test error")

	errorOutput.Reset()
	presenter.Error(errors.New("test error"), "")
	assert.Equal(t, "[ERROR] test error\n", errorOutput.String())

	errorOutput.Reset()
	presenter.Error(nil, "context")
	assert.Empty(t, errorOutput.String())
}

func TestMessages(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Success("Converted")
	presenter.Warning("Careful")
	presenter.Info("Plain")

	assert.Equal(t, "✓ Converted\n⚠ Careful\nPlain\n", output.String())
}

func TestSection(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Section("Commands")

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Commands", lines[0])
	assert.Equal(t, strings.Repeat("-", len("Commands")), lines[1])
}

func TestOperation(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Operation("create", "command review (claude -> gemini)")
	presenter.Operation("unchanged", "skill pdf")
	presenter.Operation("bogus", "x")

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "+ create    command review (claude -> gemini)", lines[0])
	assert.Equal(t, "= unchanged skill pdf", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "? bogus"))
}

func TestDiff(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	diff := "--- a.md\n+++ a.md\n@@ -1 +1 @@\n-old\n+new"
	presenter.Diff(diff)
	assert.Equal(t, diff+"\n", output.String())

	output.Reset()
	presenter.Diff("")
	assert.Empty(t, output.String())
}

func TestSummary(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Summary([]Count{{"created", 2}, {"updated", 0}, {"failed", 1}})
	assert.Equal(t, "[Summary] 2 created | 1 failed\n", output.String())

	output.Reset()
	presenter.Summary(nil)
	assert.Equal(t, "[Summary] nothing to do\n", output.String())
}

func TestQuietMode(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)
	presenter.SetQuiet(true)
	assert.True(t, presenter.IsQuiet())

	presenter.Success("x")
	presenter.Warning("x")
	presenter.Info("x")
	presenter.Section("x")
	presenter.Operation("create", "x")
	presenter.Diff("+x\n")
	presenter.Summary([]Count{{"created", 1}})
	presenter.Separator()
	assert.Empty(t, output.String())

	presenter.SetQuiet(false)
	assert.False(t, presenter.IsQuiet())
}

func TestColorModeConfiguration(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	presenter := NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever)
	assert.Equal(t, ColorNever, presenter.colorMode)
	assert.True(t, color.NoColor)

	presenter = NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, ColorAlways)
	assert.Equal(t, ColorAlways, presenter.colorMode)
	assert.False(t, color.NoColor)
}

func TestGlobalFunctions(t *testing.T) {
	var output, errorOutput bytes.Buffer
	restore := SetDefault(NewWithOptions(&output, &errorOutput, ColorNever))
	defer restore()

	Error(errors.New("test error"), "error context")
	assert.Contains(t, errorOutput.String(), "error context")

	Operation("update", "command review")
	Summary([]Count{{"updated", 1}})
	Diff("+new\n")
	assert.Contains(t, output.String(), "~ update    command review")
	assert.Contains(t, output.String(), "[Summary] 1 updated")
	assert.Contains(t, output.String(), "+new\n")

	SetQuiet(true)
	assert.True(t, IsQuiet())
	output.Reset()
	Info("should not appear")
	assert.Empty(t, output.String())
	SetQuiet(false)
}
