package ir

import (
	"strings"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Field identifies one well-known semantic field
type Field int

// Semantic fields
const (
	FieldName Field = iota
	FieldDescription
	FieldArgumentHint
	FieldAllowedTools
	FieldModel
	FieldDisableModelInvocation
	FieldSource
)

// Fields lists every semantic field in emission order
var Fields = []Field{
	FieldName,
	FieldDescription,
	FieldArgumentHint,
	FieldAllowedTools,
	FieldModel,
	FieldDisableModelInvocation,
	FieldSource,
}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldDescription:
		return "description"
	case FieldArgumentHint:
		return "argumentHint"
	case FieldAllowedTools:
		return "allowedTools"
	case FieldModel:
		return "model"
	case FieldDisableModelInvocation:
		return "disableModelInvocation"
	case FieldSource:
		return "source"
	default:
		return "unknown"
	}
}

// Semantic holds the fields every agent understands, each possibly under a
// different spelling or polarity. Empty strings, nil slices and a nil
// DisableModelInvocation mean the field is absent.
type Semantic struct {
	Name                   string
	Description            string
	ArgumentHint           string
	AllowedTools           []string
	Model                  string
	DisableModelInvocation *bool
	// Source records the upstream origin, e.g. "owner/repo"
	Source string
}

// Set decodes a raw metadata value into the field. Values are decoded
// weakly so "true" or 1 become booleans and numbers become strings.
// invert negates a boolean field, for agents that store the opposite flag.
func (s *Semantic) Set(field Field, raw any, invert bool) error {
	if raw == nil {
		return nil
	}
	if lit, ok := raw.(document.Literal); ok {
		raw = lit.Text
		if field == FieldDisableModelInvocation {
			raw = lit.Value()
		}
	}

	switch field {
	case FieldName:
		return weakString(raw, &s.Name)
	case FieldDescription:
		return weakString(raw, &s.Description)
	case FieldArgumentHint:
		return weakString(raw, &s.ArgumentHint)
	case FieldModel:
		return weakString(raw, &s.Model)
	case FieldSource:
		return setProvenance(raw, &s.Source)
	case FieldAllowedTools:
		return setTools(raw, &s.AllowedTools)
	case FieldDisableModelInvocation:
		var b bool
		if err := mapstructure.WeakDecode(raw, &b); err != nil {
			return errors.Wrapf(err, "invalid boolean for %s", field)
		}
		if invert {
			b = !b
		}
		s.DisableModelInvocation = &b
		return nil
	}
	return errors.Errorf("unknown semantic field %d", field)
}

// Value returns the field value as it should be written to metadata, and
// false when the field is absent.
func (s *Semantic) Value(field Field, invert bool) (any, bool) {
	switch field {
	case FieldName:
		return s.Name, s.Name != ""
	case FieldDescription:
		return s.Description, s.Description != ""
	case FieldArgumentHint:
		return s.ArgumentHint, s.ArgumentHint != ""
	case FieldModel:
		return s.Model, s.Model != ""
	case FieldSource:
		return s.Source, s.Source != ""
	case FieldAllowedTools:
		if len(s.AllowedTools) == 0 {
			return nil, false
		}
		return append([]string(nil), s.AllowedTools...), true
	case FieldDisableModelInvocation:
		if s.DisableModelInvocation == nil {
			return nil, false
		}
		v := *s.DisableModelInvocation
		if invert {
			v = !v
		}
		return v, true
	}
	return nil, false
}

// Has reports whether the field is present
func (s *Semantic) Has(field Field) bool {
	_, ok := s.Value(field, false)
	return ok
}

// Clear removes the field
func (s *Semantic) Clear(field Field) {
	switch field {
	case FieldName:
		s.Name = ""
	case FieldDescription:
		s.Description = ""
	case FieldArgumentHint:
		s.ArgumentHint = ""
	case FieldModel:
		s.Model = ""
	case FieldSource:
		s.Source = ""
	case FieldAllowedTools:
		s.AllowedTools = nil
	case FieldDisableModelInvocation:
		s.DisableModelInvocation = nil
	}
}

func weakString(raw any, out *string) error {
	if err := mapstructure.WeakDecode(raw, out); err != nil {
		return errors.Wrap(err, "expected a string")
	}
	return nil
}

// setProvenance accepts a scalar or a legacy array, in which case the first
// element wins and an empty array means no provenance.
func setProvenance(raw any, out *string) error {
	if list, ok := raw.([]any); ok {
		if len(list) == 0 {
			*out = ""
			return nil
		}
		raw = list[0]
	}
	if list, ok := raw.([]string); ok {
		if len(list) == 0 {
			*out = ""
			return nil
		}
		raw = list[0]
	}
	return weakString(raw, out)
}

// setTools accepts a list or a comma separated string
func setTools(raw any, out *[]string) error {
	if str, ok := raw.(string); ok {
		var tools []string
		for _, part := range strings.Split(str, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tools = append(tools, part)
			}
		}
		*out = tools
		return nil
	}

	var tools []string
	if err := mapstructure.WeakDecode(raw, &tools); err != nil {
		return errors.Wrap(err, "expected a list of tools")
	}
	*out = tools
	return nil
}
