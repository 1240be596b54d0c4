package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		name     string
		expected FileKind
	}{
		{"scripts/run.py", FileText},
		{"README.md", FileText},
		{"config.json", FileConfig},
		{"settings.YAML", FileConfig},
		{"Makefile", FileConfig},
		{"assets/logo.png", FileBinary},
		{"dist/archive.tar", FileBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyFile(tt.name))
		})
	}
}

func TestCollectSupportFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write(SkillFileName, "---\nname: x\n---\nbody")
	write("scripts/extract.py", "print('hi')\n")
	write("reference/forms.json", `{"a": 1}`)
	write("assets/logo.png", "\x89PNG")
	write(".git/HEAD", "ref: refs/heads/main")
	write(".DS_Store", "junk")

	files, err := CollectSupportFiles(dir)
	require.NoError(t, err)

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"assets/logo.png", "reference/forms.json", "scripts/extract.py"}, paths)
	assert.Equal(t, FileBinary, files[0].Kind)
	assert.Equal(t, FileConfig, files[1].Kind)
	assert.Equal(t, FileText, files[2].Kind)
}

func TestLoadSupportContent(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("hello"), 0o644))
	invalidPath := filepath.Join(dir, "weird.txt")
	require.NoError(t, os.WriteFile(invalidPath, []byte{0xff, 0xfe, 0x00}, 0o644))

	files := LoadSupportContent([]SupportFile{
		{Path: "notes.txt", Kind: FileText, SourcePath: textPath},
		{Path: "missing.txt", Kind: FileText, SourcePath: filepath.Join(dir, "missing.txt")},
		{Path: "weird.txt", Kind: FileText, SourcePath: invalidPath},
	})

	require.NotNil(t, files[0].Content)
	assert.Equal(t, "hello", *files[0].Content)
	assert.Nil(t, files[1].Content)
	assert.Equal(t, FileBinary, files[2].Kind)
	assert.Nil(t, files[2].Content)
}
