package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// YAML tags of scalars kept as Literal
const (
	tagBool      = "!!bool"
	tagInt       = "!!int"
	tagFloat     = "!!float"
	tagTimestamp = "!!timestamp"
)

// Literal is a YAML scalar kept in its source spelling because decoding it
// and encoding it again would print it differently, e.g. 2024-01-01 or 1.0
type Literal struct {
	Tag  string
	Text string
}

// Value returns the decoded scalar. Timestamps decode to their text.
func (l Literal) Value() any {
	var v any
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: l.Tag, Value: l.Text}
	if err := node.Decode(&v); err != nil {
		return l.Text
	}
	return v
}

// MarshalYAML emits the source spelling untagged
func (l Literal) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: l.Tag, Value: l.Text}, nil
}

// MarshalJSON emits timestamps as their source text and other scalars by value
func (l Literal) MarshalJSON() ([]byte, error) {
	if l.Tag == tagTimestamp {
		return json.Marshal(l.Text)
	}
	v := l.Value()
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return json.Marshal(l.Text)
	}
	return json.Marshal(v)
}

// scalarValue decodes a scalar node, keeping it as a Literal when the
// decoded value would not encode back to the same text
func scalarValue(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}

	switch tag := node.ShortTag(); tag {
	case tagBool, tagInt, tagFloat, tagTimestamp:
		out, err := yaml.Marshal(v)
		if err != nil || strings.TrimSpace(string(out)) != node.Value {
			return Literal{Tag: tag, Text: node.Value}, nil
		}
	}
	return v, nil
}

// fromTOML turns TOML dates and integral floats into literals so they
// print as YAML dates and floats
func fromTOML(v any) any {
	switch val := v.(type) {
	case toml.LocalDate:
		return Literal{Tag: tagTimestamp, Text: val.String()}
	case toml.LocalDateTime:
		return Literal{Tag: tagTimestamp, Text: val.String()}
	case time.Time:
		return Literal{Tag: tagTimestamp, Text: val.Format(time.RFC3339Nano)}
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return Literal{Tag: tagFloat, Text: strconv.FormatFloat(val, 'f', -1, 64) + ".0"}
		}
		return val
	case map[string]any:
		out := NewMetadata()
		for _, k := range sortedKeys(val) {
			out.Set(k, fromTOML(val[k]))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromTOML(item)
		}
		return out
	default:
		return val
	}
}

// toTOML turns metadata values into values go-toml encodes natively.
// Timestamps without a zone become local dates and date-times.
func toTOML(v any) any {
	switch val := v.(type) {
	case *Metadata:
		out := make(map[string]any, val.Len())
		val.Each(func(k string, item any) {
			out[k] = toTOML(item)
		})
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toTOML(item)
		}
		return out
	case Literal:
		if val.Tag == tagTimestamp {
			var date toml.LocalDate
			if err := date.UnmarshalText([]byte(val.Text)); err == nil {
				return date
			}
			var dateTime toml.LocalDateTime
			if err := dateTime.UnmarshalText([]byte(val.Text)); err == nil {
				return dateTime
			}
			if t, err := time.Parse(time.RFC3339Nano, val.Text); err == nil {
				return t
			}
		}
		return val.Value()
	default:
		return val
	}
}
