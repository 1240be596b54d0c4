package agents

import (
	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
)

// chimeraAdapter reads and writes hub documents. Semantic fields live at the
// top level and every other agent's opaque fields live in its own section
// under the reserved HubKey mapping.
type chimeraAdapter struct {
	*markdownAdapter
	sources map[ir.Identity]profile
}

func newChimeraAdapter(sources map[ir.Identity]profile, exclusions exclusionTable) *chimeraAdapter {
	return &chimeraAdapter{
		markdownAdapter: newMarkdownAdapter(chimeraProfile(), exclusions),
		sources:         sources,
	}
}

// Validate checks the shared fields and the shape of the hub sections
func (a *chimeraAdapter) Validate(doc *document.Document) error {
	verr := &document.ValidationError{Path: doc.Path}
	if err := a.markdownAdapter.Validate(doc); err != nil {
		if v, ok := err.(*document.ValidationError); ok {
			verr.Issues = append(verr.Issues, v.Issues...)
		} else {
			return err
		}
	}

	if raw, ok := doc.Metadata.Get(HubKey); ok {
		sections, isMap := raw.(*document.Metadata)
		if !isMap {
			verr.Add(HubKey, "must be a mapping of agent sections")
			return verr.OrNil()
		}
		sections.Each(func(key string, value any) {
			id := ir.Identity(key)
			if !id.Valid() || id.IsHub() {
				verr.Add(HubKey+"."+key, "unknown agent section")
				return
			}
			if _, isMap := value.(*document.Metadata); !isMap {
				verr.Add(HubKey+"."+key, "must be a mapping")
			}
		})
	}
	return verr.OrNil()
}

// ToIR splits the hub document. With a non-hub DestinationType the extras
// are a copy of that agent's section, or empty when it has none. Otherwise
// they are the generic top-level fields and the sections travel in Meta.
func (a *chimeraAdapter) ToIR(doc *document.Document, opts ToIROptions) (*ir.SemanticIR, error) {
	out, err := a.toIR(doc)
	if err != nil {
		return nil, err
	}

	sections, _ := doc.Metadata.GetMetadata(HubKey)
	dest := opts.DestinationType
	if dest != "" && !dest.IsHub() {
		out.Extras = document.NewMetadata()
		if section, ok := sections.GetMetadata(dest.String()); ok {
			out.Extras = section.Clone()
		}
	} else {
		out.Meta.HubSections = sections.Clone()
	}
	out.Extras.Delete(HubKey)
	return out, nil
}

// FromIR merges the IR into the existing hub document. The source agent's
// extras replace its section wholesale, other sections are untouched and
// top-level fields the source cannot express keep their current values.
func (a *chimeraAdapter) FromIR(in *ir.SemanticIR, opts FromIROptions) (*document.Document, error) {
	source := in.Meta.SourceType
	fromHub := source == "" || source.IsHub()

	meta := document.NewMetadata()
	if opts.ExistingTarget != nil && !fromHub {
		meta = opts.ExistingTarget.Metadata.Clone()
		if meta == nil {
			meta = document.NewMetadata()
		}
	}
	sections, ok := meta.GetMetadata(HubKey)
	if !ok {
		sections = document.NewMetadata()
	}
	meta.Delete(HubKey)

	semantic := a.semanticFor(in)
	sourceProfile, known := a.sources[source]
	for _, mapping := range a.profile.fieldsFor(in.ContentType) {
		if v, ok := semantic.Value(mapping.field, mapping.invert); ok {
			meta.Set(mapping.key, v)
			continue
		}
		if fromHub || !known || sourceProfile.supports(in.ContentType, mapping.field) {
			meta.Delete(mapping.key)
		}
	}

	if fromHub {
		a.copyExtras(meta, in, opts)
		in.Meta.HubSections.Each(func(key string, value any) {
			sections.Set(key, document.CloneValue(value))
		})
	} else {
		extras := in.Extras.Clone()
		extras.Delete(HubKey)
		if extras.Len() > 0 {
			sections.Set(source.String(), extras)
		} else {
			sections.Delete(source.String())
		}
	}

	if sections.Len() > 0 {
		meta.Set(HubKey, sections)
	}
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
