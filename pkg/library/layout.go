// Package library discovers the commands and skills each agent keeps on
// disk and maps names back to their locations.
package library

import (
	"path/filepath"
	"strings"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
)

// NamespaceSeparator joins nested command directories into a command name,
// so frontend/build.md is the command frontend:build
const NamespaceSeparator = ":"

// Layout describes where one agent keeps its documents, relative to a root
type Layout struct {
	Agent ir.Identity
	// Dir is the agent's base directory, e.g. ".claude"
	Dir       string
	Commands  string
	Skills    string
	Extension string
}

// DefaultLayouts returns the on-disk layout of every agent
func DefaultLayouts() map[ir.Identity]Layout {
	return map[ir.Identity]Layout{
		ir.Claude:   {Agent: ir.Claude, Dir: ".claude", Commands: "commands", Skills: "skills", Extension: ".md"},
		ir.Gemini:   {Agent: ir.Gemini, Dir: ".gemini", Commands: "commands", Skills: "skills", Extension: ".toml"},
		ir.Codex:    {Agent: ir.Codex, Dir: ".codex", Commands: "prompts", Skills: "skills", Extension: ".md"},
		ir.OpenCode: {Agent: ir.OpenCode, Dir: ".opencode", Commands: "command", Skills: "skill", Extension: ".md"},
		ir.Chimera:  {Agent: ir.Chimera, Dir: ".chimera", Commands: "commands", Skills: "skills", Extension: ".md"},
	}
}

// ContentDir returns the directory holding documents of type t under root
func (l Layout) ContentDir(root string, t document.ContentType) string {
	sub := l.Commands
	if t == document.Skill {
		sub = l.Skills
	}
	base := l.Dir
	if !filepath.IsAbs(base) {
		base = filepath.Join(root, base)
	}
	return filepath.Join(base, sub)
}

// Location returns the command file or skill directory for a name
func (l Layout) Location(root string, t document.ContentType, name string) string {
	dir := l.ContentDir(root, t)
	if t == document.Skill {
		return filepath.Join(dir, name)
	}
	rel := strings.ReplaceAll(name, NamespaceSeparator, "/")
	return filepath.Join(dir, filepath.FromSlash(rel)+l.Extension)
}

// commandName turns a slash separated path relative to the commands
// directory into a command name
func (l Layout) commandName(rel string) string {
	rel = strings.TrimSuffix(rel, l.Extension)
	return strings.ReplaceAll(rel, "/", NamespaceSeparator)
}
