// Package ir defines the Semantic IR, the pivot representation every agent
// adapter converts to and from. An IR value is created for a single
// conversion and owned by the call that produced it.
package ir

import (
	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/segments"
)

// Meta records where a document came from and where it is going
type Meta struct {
	SourcePath string
	SourceType Identity
	TargetType Identity
	// SkillName is the skill directory name, empty for commands
	SkillName    string
	SupportFiles []document.SupportFile
	// Dialect is the name of the placeholder dialect RawBody is written in
	Dialect string
	// HubSections carries every per-agent hub section when the source is
	// the hub itself, so hub to hub copies keep them.
	HubSections *document.Metadata
}

// SemanticIR is the agent independent form of a command or skill
type SemanticIR struct {
	ContentType document.ContentType
	Body        segments.Body
	// RawBody is the body text as written in Meta.Dialect
	RawBody  string
	Semantic Semantic
	// Extras holds every metadata field that is not semantic, verbatim
	Extras *document.Metadata
	Meta   Meta
}

// Remap rewrites the raw body in the target dialect. It is a no-op when
// the body is already written in that dialect.
func (s *SemanticIR) Remap(target *segments.Dialect) {
	if target == nil || s.Meta.Dialect == target.Name() {
		return
	}
	s.RawBody = target.Serialize(s.Body)
	s.Meta.Dialect = target.Name()
}

// BodyFor returns the body text in the given dialect
func (s *SemanticIR) BodyFor(dialect *segments.Dialect) string {
	if dialect == nil || s.Meta.Dialect == dialect.Name() {
		return s.RawBody
	}
	return dialect.Serialize(s.Body)
}
