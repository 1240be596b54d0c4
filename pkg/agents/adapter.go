// Package agents translates commands and skills between each supported
// agent's on-disk dialect and the Semantic IR. Every agent identity has
// exactly one Adapter, looked up through a Registry that covers the closed
// identity set. The chimera hub adapter stores every other agent's opaque
// fields side by side so any of them can be restored exactly.
package agents

import (
	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/jingkaihe/chimera/pkg/segments"
)

// HubKey is the reserved metadata key holding per-agent hub sections
const HubKey = "chimera"

// escapePrefix is prepended to extras whose key the destination reserves
const escapePrefix = "x-"

// ToIROptions configures ToIR
type ToIROptions struct {
	// DestinationType selects which agent's hub section becomes the extras
	// when the source is the hub. Ignored by other adapters.
	DestinationType ir.Identity
}

// FromIROptions configures FromIR
type FromIROptions struct {
	// RemoveUnsupported drops the fields on the source/destination
	// exclusion list instead of carrying them over
	RemoveUnsupported bool
	// ExistingTarget is the previously parsed destination document whose
	// hub sections for other agents must survive the merge
	ExistingTarget *document.Document
}

// Adapter converts one agent's documents to and from the Semantic IR
type Adapter interface {
	Identity() ir.Identity
	Dialect() *segments.Dialect
	// CommandExtension is the file extension of command files, with dot
	CommandExtension() string
	// FieldKey returns the metadata key and polarity the agent uses for a
	// semantic field, and false when the agent cannot express it
	FieldKey(t document.ContentType, field ir.Field) (key string, invert bool, ok bool)
	// RequiresDescription reports whether documents of type t are invalid
	// for the agent without a description
	RequiresDescription(t document.ContentType) bool
	// Exclusions lists the fields coming from source that RemoveUnsupported drops
	Exclusions(t document.ContentType, source ir.Identity) []string

	Parse(t document.ContentType, location string) (*document.Document, error)
	Validate(doc *document.Document) error
	Stringify(doc *document.Document) (string, error)
	ToIR(doc *document.Document, opts ToIROptions) (*ir.SemanticIR, error)
	FromIR(in *ir.SemanticIR, opts FromIROptions) (*document.Document, error)
}
