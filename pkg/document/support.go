package document

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// FileKind classifies a skill support file
type FileKind string

// Support file kinds
const (
	FileBinary FileKind = "binary"
	FileText   FileKind = "text"
	FileConfig FileKind = "config"
)

// SupportFile is one file shipped alongside SKILL.md.
// Content is nil for binaries and for files that could not be read;
// binaries are byte-copied from SourcePath when written.
type SupportFile struct {
	// Path is slash separated and relative to the skill directory
	Path       string
	Kind       FileKind
	Content    *string
	SourcePath string
}

var (
	configExtensions = map[string]bool{
		".json": true, ".jsonc": true, ".yaml": true, ".yml": true, ".toml": true,
		".ini": true, ".cfg": true, ".conf": true, ".env": true, ".xml": true,
	}
	configNames = map[string]bool{
		"makefile": true, "dockerfile": true, ".editorconfig": true, ".gitignore": true,
	}
	binaryExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".ico": true,
		".bmp": true, ".pdf": true, ".zip": true, ".gz": true, ".tgz": true, ".tar": true,
		".7z": true, ".jar": true, ".wasm": true, ".so": true, ".dylib": true, ".dll": true,
		".exe": true, ".bin": true, ".woff": true, ".woff2": true, ".ttf": true, ".otf": true,
		".mp3": true, ".mp4": true, ".wav": true, ".mov": true, ".sqlite": true, ".db": true,
		".pyc": true, ".class": true,
	}
)

// ignoredPatterns are never collected as support files
var ignoredPatterns = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/__pycache__/**",
	"**/.DS_Store",
	"**/Thumbs.db",
}

// ClassifyFile classifies a file by its extension or well-known name
func ClassifyFile(name string) FileKind {
	base := strings.ToLower(filepath.Base(name))
	ext := filepath.Ext(base)
	switch {
	case binaryExtensions[ext]:
		return FileBinary
	case configExtensions[ext], configNames[base]:
		return FileConfig
	default:
		return FileText
	}
}

func isIgnored(rel string) bool {
	for _, pattern := range ignoredPatterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// CollectSupportFiles walks a skill directory and returns every file except
// SKILL.md, classified but without content. Paths are sorted.
func CollectSupportFiles(dir string) ([]SupportFile, error) {
	var files []SupportFile

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if isIgnored(rel + "/x") {
				return filepath.SkipDir
			}
			return nil
		}
		if rel == SkillFileName || isIgnored(rel) || !d.Type().IsRegular() {
			return nil
		}

		files = append(files, SupportFile{
			Path:       rel,
			Kind:       ClassifyFile(rel),
			SourcePath: path,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk skill directory %s", dir)
	}
	return files, nil
}

// LoadSupportContent reads the content of every text and config file.
// A file that cannot be read keeps nil content, and a file that is not
// valid UTF-8 is reclassified as binary.
func LoadSupportContent(files []SupportFile) []SupportFile {
	for i := range files {
		f := &files[i]
		if f.Kind == FileBinary || f.SourcePath == "" {
			continue
		}
		data, err := os.ReadFile(f.SourcePath)
		if err != nil {
			f.Content = nil
			continue
		}
		if !utf8.Valid(data) {
			f.Kind = FileBinary
			continue
		}
		content := string(data)
		f.Content = &content
	}
	return files
}
