package agents

import (
	"slices"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/jingkaihe/chimera/pkg/segments"
)

var (
	commandOnly = []document.ContentType{document.Command}
	skillOnly   = []document.ContentType{document.Skill}
)

// fieldMapping maps a semantic field to an agent's metadata key
type fieldMapping struct {
	field ir.Field
	key   string
	// invert marks a boolean stored with the opposite polarity
	invert bool
	// types restricts the field to some content types, empty means all
	types []document.ContentType
}

func (s fieldMapping) appliesTo(t document.ContentType) bool {
	return len(s.types) == 0 || slices.Contains(s.types, t)
}

// profile is the constant description of one agent's dialect
type profile struct {
	identity   ir.Identity
	dialect    *segments.Dialect
	commandExt string
	fields     []fieldMapping
	// specific lists fields that only mean something to this agent
	specific []string
	// reserved lists keys that cannot hold extras, per content type
	reserved map[document.ContentType][]string
	// described lists the content types that must carry a description
	described []document.ContentType
}

func (p profile) fieldsFor(t document.ContentType) []fieldMapping {
	out := make([]fieldMapping, 0, len(p.fields))
	for _, mapping := range p.fields {
		if mapping.appliesTo(t) {
			out = append(out, mapping)
		}
	}
	return out
}

func (p profile) byKey(t document.ContentType, key string) (fieldMapping, bool) {
	for _, mapping := range p.fields {
		if mapping.key == key && mapping.appliesTo(t) {
			return mapping, true
		}
	}
	return fieldMapping{}, false
}

func (p profile) byField(t document.ContentType, field ir.Field) (fieldMapping, bool) {
	for _, mapping := range p.fields {
		if mapping.field == field && mapping.appliesTo(t) {
			return mapping, true
		}
	}
	return fieldMapping{}, false
}

func (p profile) supports(t document.ContentType, field ir.Field) bool {
	_, ok := p.byField(t, field)
	return ok
}

// knows reports whether the key means something to the agent for any content type
func (p profile) knows(key string) bool {
	for _, mapping := range p.fields {
		if mapping.key == key {
			return true
		}
	}
	return slices.Contains(p.specific, key)
}

func (p profile) isReserved(t document.ContentType, key string) bool {
	if key == HubKey {
		return true
	}
	if _, ok := p.byKey(t, key); ok {
		return true
	}
	return slices.Contains(p.reserved[t], key)
}

func claudeProfile() profile {
	return profile{
		identity:   ir.Claude,
		dialect:    segments.Dollar,
		commandExt: ".md",
		fields: []fieldMapping{
			{field: ir.FieldName, key: "name", types: skillOnly},
			{field: ir.FieldDescription, key: "description"},
			{field: ir.FieldArgumentHint, key: "argument-hint"},
			{field: ir.FieldAllowedTools, key: "allowed-tools"},
			{field: ir.FieldModel, key: "model"},
			{field: ir.FieldDisableModelInvocation, key: "disable-model-invocation"},
			{field: ir.FieldSource, key: "source"},
		},
		specific: []string{"hooks", "context", "agent", "user-invocable"},
	}
}

func geminiProfile() profile {
	return profile{
		identity:   ir.Gemini,
		dialect:    segments.Brace,
		commandExt: ".toml",
		fields: []fieldMapping{
			{field: ir.FieldName, key: "name", types: skillOnly},
			{field: ir.FieldDescription, key: "description"},
			{field: ir.FieldSource, key: "source"},
		},
		reserved: map[document.ContentType][]string{
			document.Command: {document.PromptKey},
		},
		described: skillOnly,
	}
}

func codexProfile() profile {
	return profile{
		identity:   ir.Codex,
		dialect:    segments.Codex,
		commandExt: ".md",
		fields: []fieldMapping{
			{field: ir.FieldName, key: "name", types: skillOnly},
			{field: ir.FieldDescription, key: "description"},
			{field: ir.FieldArgumentHint, key: "argument-hint", types: commandOnly},
			{field: ir.FieldDisableModelInvocation, key: "allow_implicit_invocation", invert: true, types: skillOnly},
			{field: ir.FieldSource, key: "source"},
		},
		described: skillOnly,
	}
}

func opencodeProfile() profile {
	return profile{
		identity:   ir.OpenCode,
		dialect:    segments.Dollar,
		commandExt: ".md",
		fields: []fieldMapping{
			{field: ir.FieldName, key: "name", types: skillOnly},
			{field: ir.FieldDescription, key: "description"},
			{field: ir.FieldModel, key: "model", types: commandOnly},
			{field: ir.FieldSource, key: "source"},
		},
		specific:  []string{"agent", "subtask", "temperature"},
		described: skillOnly,
	}
}

func chimeraProfile() profile {
	return profile{
		identity:   ir.Chimera,
		dialect:    segments.Dollar,
		commandExt: ".md",
		fields: []fieldMapping{
			{field: ir.FieldName, key: "name", types: skillOnly},
			{field: ir.FieldDescription, key: "description"},
			{field: ir.FieldArgumentHint, key: "argument-hint"},
			{field: ir.FieldAllowedTools, key: "allowed-tools"},
			{field: ir.FieldModel, key: "model"},
			{field: ir.FieldDisableModelInvocation, key: "disable-model-invocation"},
			{field: ir.FieldSource, key: "source"},
		},
	}
}

// exclusionTable lists, per content type and source agent, the fields the
// destination drops when RemoveUnsupported is set: the source's semantic
// fields the destination cannot express and the source-specific fields the
// destination does not know.
type exclusionTable map[document.ContentType]map[ir.Identity]map[string]bool

func buildExclusions(dst profile, all map[ir.Identity]profile) exclusionTable {
	table := make(exclusionTable)
	for _, t := range []document.ContentType{document.Command, document.Skill} {
		table[t] = make(map[ir.Identity]map[string]bool)
		if dst.identity.IsHub() {
			continue
		}
		for id, src := range all {
			if id == dst.identity {
				continue
			}
			excluded := make(map[string]bool)
			for _, mapping := range src.fieldsFor(t) {
				if !dst.supports(t, mapping.field) {
					excluded[mapping.key] = true
				}
			}
			for _, key := range src.specific {
				if !dst.knows(key) {
					excluded[key] = true
				}
			}
			table[t][id] = excluded
		}
	}
	return table
}
