package convert

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/logger"
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// Writer reads and writes conversion destinations
type Writer interface {
	// Read returns the current content of path and false when it does not exist
	Read(path string) (string, bool, error)
	WriteCommand(ctx context.Context, path, content string) error
	// WriteSkill writes SKILL.md and the support files under dir
	WriteSkill(ctx context.Context, dir, content string, files []document.SupportFile) error
}

// FSWriter writes to the local filesystem. Primary files are written under
// a file lock so concurrent imports into the same hub do not interleave.
type FSWriter struct{}

// Read returns the content of path
func (w *FSWriter) Read(path string) (string, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", false, nil
	}
	data, err := lockedfile.Read(path)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), true, nil
}

// WriteCommand writes a command file, creating parent directories
func (w *FSWriter) WriteCommand(ctx context.Context, path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create command directory")
	}
	if err := lockedfile.Write(path, strings.NewReader(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	logger.G(ctx).WithField("path", path).Debug("wrote command")
	return nil
}

// WriteSkill writes a skill directory. Text files are written from their
// loaded content, binaries are byte-copied from their source and text
// files that could not be read are skipped.
func (w *FSWriter) WriteSkill(ctx context.Context, dir, content string, files []document.SupportFile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create skill directory")
	}
	skillFile := filepath.Join(dir, document.SkillFileName)
	if err := lockedfile.Write(skillFile, strings.NewReader(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", skillFile)
	}

	for _, f := range files {
		rel := filepath.FromSlash(f.Path)
		if !filepath.IsLocal(rel) {
			return errors.Errorf("support file %q escapes the skill directory", f.Path)
		}
		target := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory for %s", f.Path)
		}

		switch {
		case f.Content != nil && f.Kind != document.FileBinary:
			if err := os.WriteFile(target, []byte(*f.Content), 0o644); err != nil {
				return errors.Wrapf(err, "failed to write %s", target)
			}
		case f.Kind == document.FileBinary && f.SourcePath != "":
			if samePath(f.SourcePath, target) {
				continue
			}
			if err := copyFile(f.SourcePath, target); err != nil {
				return err
			}
		default:
			logger.G(ctx).WithField("file", f.Path).Warn("support file could not be read, skipping")
		}
	}

	logger.G(ctx).WithField("dir", dir).WithField("files", len(files)).Debug("wrote skill")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", src)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "failed to copy %s", src)
	}
	return out.Close()
}
