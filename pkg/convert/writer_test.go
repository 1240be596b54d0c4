package convert

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSWriter_Read(t *testing.T) {
	w := &FSWriter{}
	dir := t.TempDir()

	content, ok, err := w.Read(filepath.Join(dir, "missing.md"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, content)

	path := filepath.Join(dir, "present.md")
	writeFile(t, path, "hello")
	content, ok, err = w.Read(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", content)
}

func TestFSWriter_WriteCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frontend", "build.md")
	require.NoError(t, (&FSWriter{}).WriteCommand(context.Background(), path, "Build"))
	assert.Equal(t, "Build", readFile(t, path))
}

func TestFSWriter_WriteSkill(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "data.bin"), "\x00\x01\x02")
	text := "notes"

	files := []document.SupportFile{
		{Path: "docs/notes.md", Kind: document.FileText, Content: &text},
		{Path: "data.bin", Kind: document.FileBinary, SourcePath: filepath.Join(src, "data.bin")},
		{Path: "unreadable.txt", Kind: document.FileText, SourcePath: filepath.Join(src, "gone.txt")},
	}

	out := filepath.Join(dir, "out")
	require.NoError(t, (&FSWriter{}).WriteSkill(ctx, out, "---\nname: out\n---\n", files))
	assert.Equal(t, "---\nname: out\n---\n", readFile(t, filepath.Join(out, document.SkillFileName)))
	assert.Equal(t, "notes", readFile(t, filepath.Join(out, "docs", "notes.md")))
	assert.Equal(t, "\x00\x01\x02", readFile(t, filepath.Join(out, "data.bin")))
	assert.NoFileExists(t, filepath.Join(out, "unreadable.txt"))

	err := (&FSWriter{}).WriteSkill(ctx, filepath.Join(dir, "evil"), "x", []document.SupportFile{
		{Path: "../escape.md", Kind: document.FileText, Content: &text},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes")
	assert.NoFileExists(t, filepath.Join(dir, "escape.md"))
}
