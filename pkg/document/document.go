// Package document models commands and skills as they exist on disk: an
// ordered metadata mapping, a raw body, the origin path and, for skills,
// the tree of support files shipped next to SKILL.md. It also provides the
// frontmatter and TOML codecs the agent dialects are built on.
package document

import (
	"path/filepath"
	"strings"
)

// ContentType distinguishes commands from skills
type ContentType string

// Content types
const (
	Command ContentType = "command"
	Skill   ContentType = "skill"
)

// SkillFileName is the fixed name of the metadata and body file in a skill directory
const SkillFileName = "SKILL.md"

// ParseContentType parses "command" or "skill", accepting plurals
func ParseContentType(s string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "command", "commands":
		return Command, true
	case "skill", "skills":
		return Skill, true
	}
	return "", false
}

// Document is a parsed command or skill.
// Metadata is nil when the source had no metadata block at all.
type Document struct {
	Type         ContentType
	Metadata     *Metadata
	Body         string
	Path         string
	SupportFiles []SupportFile
}

// Name returns the document name: the skill directory or the command file
// name without extension
func (d *Document) Name() string {
	if d.Path == "" {
		return d.Metadata.GetString("name")
	}
	base := filepath.Base(d.Path)
	if d.Type == Skill {
		if base == SkillFileName {
			return filepath.Base(filepath.Dir(d.Path))
		}
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PrimaryFile returns the file holding metadata and body: the command file
// itself or the SKILL.md inside a skill directory
func PrimaryFile(t ContentType, location string) string {
	if t == Skill && filepath.Base(location) != SkillFileName {
		return filepath.Join(location, SkillFileName)
	}
	return location
}
