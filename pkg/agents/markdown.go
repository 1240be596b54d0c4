package agents

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/jingkaihe/chimera/pkg/segments"
	"github.com/pkg/errors"
)

// markdownAdapter handles agents whose commands and skills are markdown
// files with YAML frontmatter. The other adapters embed it.
type markdownAdapter struct {
	profile    profile
	exclusions exclusionTable
	// bodyField names the body in validation messages
	bodyField string
}

func newMarkdownAdapter(p profile, exclusions exclusionTable) *markdownAdapter {
	return &markdownAdapter{profile: p, exclusions: exclusions, bodyField: "body"}
}

// Identity returns the agent identity
func (a *markdownAdapter) Identity() ir.Identity { return a.profile.identity }

// Dialect returns the agent's placeholder dialect
func (a *markdownAdapter) Dialect() *segments.Dialect { return a.profile.dialect }

// CommandExtension returns the command file extension
func (a *markdownAdapter) CommandExtension() string { return a.profile.commandExt }

// FieldKey returns the key and polarity used for a semantic field
func (a *markdownAdapter) FieldKey(t document.ContentType, field ir.Field) (string, bool, bool) {
	mapping, ok := a.profile.byField(t, field)
	return mapping.key, mapping.invert, ok
}

// RequiresDescription reports whether the profile marks t as described
func (a *markdownAdapter) RequiresDescription(t document.ContentType) bool {
	return slices.Contains(a.profile.described, t)
}

// Exclusions returns the sorted exclusion list for fields coming from source
func (a *markdownAdapter) Exclusions(t document.ContentType, source ir.Identity) []string {
	excluded := a.exclusions[t][source]
	keys := make([]string, 0, len(excluded))
	for k := range excluded {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parse reads a command file or a skill directory
func (a *markdownAdapter) Parse(t document.ContentType, location string) (*document.Document, error) {
	if t == document.Skill {
		return a.parseSkill(location)
	}

	content, err := os.ReadFile(location)
	if err != nil {
		return nil, document.NewParseError(location, errors.Wrap(err, "failed to read command file"))
	}
	meta, body, err := document.ParseMarkdown(string(content))
	if err != nil {
		return nil, document.NewParseError(location, err)
	}
	return &document.Document{
		Type:     document.Command,
		Metadata: meta,
		Body:     body,
		Path:     location,
	}, nil
}

func (a *markdownAdapter) parseSkill(location string) (*document.Document, error) {
	skillFile := document.PrimaryFile(document.Skill, location)
	dir := filepath.Dir(skillFile)

	content, err := os.ReadFile(skillFile)
	if err != nil {
		return nil, document.NewParseError(dir, errors.Wrap(err, "failed to read skill file"))
	}
	meta, body, err := document.ParseMarkdown(string(content))
	if err != nil {
		return nil, document.NewParseError(dir, err)
	}

	files, err := document.CollectSupportFiles(dir)
	if err != nil {
		return nil, document.NewParseError(dir, err)
	}

	return &document.Document{
		Type:         document.Skill,
		Metadata:     meta,
		Body:         body,
		Path:         dir,
		SupportFiles: document.LoadSupportContent(files),
	}, nil
}

// Validate checks required fields and the types of semantic fields
func (a *markdownAdapter) Validate(doc *document.Document) error {
	verr := &document.ValidationError{Path: doc.Path}

	if doc.Type == document.Skill {
		if doc.Metadata == nil {
			verr.Add("frontmatter", "skill requires a metadata block")
		}
		if mapping, ok := a.profile.byField(document.Skill, ir.FieldName); ok {
			name := strings.TrimSpace(doc.Metadata.GetString(mapping.key))
			switch {
			case name == "":
				verr.Add(mapping.key, "is required")
			case strings.ContainsAny(name, "/\\") || strings.ContainsFunc(name, isSpace):
				verr.Add(mapping.key, "must not contain slashes or whitespace")
			}
		}
	}

	var scratch ir.Semantic
	doc.Metadata.Each(func(key string, value any) {
		if mapping, ok := a.profile.byKey(doc.Type, key); ok {
			if err := scratch.Set(mapping.field, value, mapping.invert); err != nil {
				verr.Add(key, err.Error())
			}
		}
	})

	if strings.TrimSpace(doc.Body) == "" {
		verr.Add(a.bodyField, "content is required")
	}
	return verr.OrNil()
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Stringify renders the document as frontmatter plus body
func (a *markdownAdapter) Stringify(doc *document.Document) (string, error) {
	return document.FormatMarkdown(doc.Metadata, doc.Body)
}

// ToIR splits the metadata into semantic fields and extras
func (a *markdownAdapter) ToIR(doc *document.Document, _ ToIROptions) (*ir.SemanticIR, error) {
	return a.toIR(doc)
}

func (a *markdownAdapter) toIR(doc *document.Document) (*ir.SemanticIR, error) {
	out := &ir.SemanticIR{
		ContentType: doc.Type,
		Body:        a.profile.dialect.Parse(doc.Body),
		RawBody:     doc.Body,
		Extras:      document.NewMetadata(),
		Meta: ir.Meta{
			SourcePath:   doc.Path,
			SourceType:   a.profile.identity,
			SupportFiles: doc.SupportFiles,
			Dialect:      a.profile.dialect.Name(),
		},
	}
	if doc.Type == document.Skill {
		out.Meta.SkillName = doc.Name()
	}

	var err error
	doc.Metadata.Each(func(key string, value any) {
		if err != nil || key == HubKey {
			return
		}
		if mapping, ok := a.profile.byKey(doc.Type, key); ok {
			if setErr := out.Semantic.Set(mapping.field, value, mapping.invert); setErr != nil {
				err = errors.Wrapf(setErr, "field %q", key)
			}
			return
		}
		out.Extras.Set(key, document.CloneValue(value))
	})
	if err != nil {
		return nil, document.NewConversionError(doc.Path, a.profile.identity.String(), "ir", err)
	}
	return out, nil
}

// FromIR writes the semantic fields under the agent's spelling and copies
// the extras, dropping the exclusion list when RemoveUnsupported is set
func (a *markdownAdapter) FromIR(in *ir.SemanticIR, opts FromIROptions) (*document.Document, error) {
	meta := document.NewMetadata()
	semantic := a.semanticFor(in)

	for _, mapping := range a.profile.fieldsFor(in.ContentType) {
		if v, ok := semantic.Value(mapping.field, mapping.invert); ok {
			meta.Set(mapping.key, v)
		}
	}
	a.copyExtras(meta, in, opts)

	if in.ContentType == document.Command && meta.Len() == 0 {
		meta = nil
	}
	return &document.Document{
		Type:         in.ContentType,
		Metadata:     meta,
		Body:         in.BodyFor(a.profile.dialect),
		SupportFiles: in.Meta.SupportFiles,
	}, nil
}

// semanticFor fills the skill name from the directory name when missing
func (a *markdownAdapter) semanticFor(in *ir.SemanticIR) ir.Semantic {
	semantic := in.Semantic
	if in.ContentType == document.Skill && semantic.Name == "" {
		semantic.Name = in.Meta.SkillName
	}
	return semantic
}

func (a *markdownAdapter) copyExtras(meta *document.Metadata, in *ir.SemanticIR, opts FromIROptions) {
	var excluded map[string]bool
	if opts.RemoveUnsupported {
		excluded = a.exclusions[in.ContentType][in.Meta.SourceType]
	}

	in.Extras.Each(func(key string, value any) {
		if key == HubKey || excluded[key] {
			return
		}
		for meta.Has(key) || a.profile.isReserved(in.ContentType, key) {
			key = escapePrefix + key
		}
		meta.Set(key, document.CloneValue(value))
	})
}
