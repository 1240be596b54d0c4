package library

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Entry is one discovered command or skill
type Entry struct {
	Name        string
	Type        document.ContentType
	Agent       ir.Identity
	Path        string
	Description string
}

// Discovery finds documents under a root directory
type Discovery struct {
	root    string
	layouts map[ir.Identity]Layout
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithRoot sets the directory agent layouts are resolved against
func WithRoot(root string) Option {
	return func(d *Discovery) error {
		abs, err := filepath.Abs(root)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve %s", root)
		}
		d.root = abs
		return nil
	}
}

// WithHomeRoot resolves layouts against the user's home directory
func WithHomeRoot() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.root = homeDir
		return nil
	}
}

// WithAgentDir overrides the base directory of one agent
func WithAgentDir(agent ir.Identity, dir string) Option {
	return func(d *Discovery) error {
		layout, ok := d.layouts[agent]
		if !ok {
			return errors.Errorf("unknown agent %q", agent)
		}
		layout.Dir = dir
		d.layouts[agent] = layout
		return nil
	}
}

// NewDiscovery creates a Discovery rooted at the current directory unless
// an option says otherwise
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{root: ".", layouts: DefaultLayouts()}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Root returns the directory layouts are resolved against
func (d *Discovery) Root() string { return d.root }

// Layout returns the layout of an agent
func (d *Discovery) Layout(agent ir.Identity) (Layout, error) {
	layout, ok := d.layouts[agent]
	if !ok {
		return Layout{}, errors.Errorf("unknown agent %q", agent)
	}
	return layout, nil
}

// Location returns where an agent keeps the named document
func (d *Discovery) Location(agent ir.Identity, t document.ContentType, name string) (string, error) {
	layout, err := d.Layout(agent)
	if err != nil {
		return "", err
	}
	return layout.Location(d.root, t, name), nil
}

// Discover lists an agent's documents of type t sorted by name. A missing
// directory yields no entries.
func (d *Discovery) Discover(agent ir.Identity, t document.ContentType) ([]Entry, error) {
	layout, err := d.Layout(agent)
	if err != nil {
		return nil, err
	}
	dir := layout.ContentDir(d.root, t)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, nil
	}

	pattern := "**/*" + layout.Extension
	if t == document.Skill {
		pattern = "*/" + document.SkillFileName
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", dir)
	}

	entries := make([]Entry, 0, len(matches))
	for _, rel := range matches {
		entry := Entry{Type: t, Agent: agent}
		primary := filepath.Join(dir, filepath.FromSlash(rel))
		if t == document.Skill {
			entry.Path = filepath.Dir(primary)
			entry.Name = filepath.Base(entry.Path)
		} else {
			entry.Path = primary
			entry.Name = layout.commandName(rel)
		}
		entry.Description = loadDescription(primary)
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// DiscoverAll lists an agent's commands followed by its skills
func (d *Discovery) DiscoverAll(agent ir.Identity) ([]Entry, error) {
	var all []Entry
	for _, t := range []document.ContentType{document.Command, document.Skill} {
		entries, err := d.Discover(agent, t)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// Filter keeps the entries whose name matches any pattern. Patterns are
// globs where * stops at the namespace separator and ** does not. No
// patterns keeps everything.
func Filter(entries []Entry, patterns []string) ([]Entry, error) {
	if len(patterns) == 0 {
		return entries, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, []rune(NamespaceSeparator)[0])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid filter %q", p)
		}
		globs = append(globs, g)
	}

	var out []Entry
	for _, e := range entries {
		for _, g := range globs {
			if g.Match(e.Name) {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// loadDescription reads the description of a document, best effort
func loadDescription(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	if filepath.Ext(path) == ".toml" {
		fields, err := document.DecodeTOML(content)
		if err != nil {
			return ""
		}
		return fields.GetString("description")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)
	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return ""
	}
	description, _ := meta.Get(pctx)["description"].(string)
	return description
}
