package document

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Metadata is an ordered mapping of field name to a JSON-like value.
// Values are nil, bool, numbers, strings, Literal, []any or nested *Metadata.
// A nil *Metadata is valid and behaves as an empty, read-only mapping.
type Metadata struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewMetadata creates an empty metadata mapping
func NewMetadata() *Metadata {
	return &Metadata{fields: orderedmap.New[string, any]()}
}

// MetadataFromMap builds metadata from a plain map with keys in sorted order
func MetadataFromMap(m map[string]any) *Metadata {
	md := NewMetadata()
	for _, k := range sortedKeys(m) {
		md.Set(k, normalize(m[k]))
	}
	return md
}

// Len returns the number of fields
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return m.fields.Len()
}

// Get returns the value stored under key
func (m *Metadata) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	return m.fields.Get(key)
}

// Has reports whether key is present
func (m *Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. An existing key keeps its position.
func (m *Metadata) Set(key string, value any) {
	m.fields.Set(key, value)
}

// Delete removes key and reports whether it was present
func (m *Metadata) Delete(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.fields.Delete(key)
	return ok
}

// Keys returns the field names in order
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.fields.Len())
	for pair := m.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every field in order
func (m *Metadata) Each(fn func(key string, value any)) {
	if m == nil {
		return
	}
	for pair := m.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// GetString returns the value under key if it is a string
func (m *Metadata) GetString(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

// GetMetadata returns the nested mapping under key
func (m *Metadata) GetMetadata(key string) (*Metadata, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Metadata)
	return nested, ok
}

// Clone returns a deep copy. Cloning nil returns nil.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	out := NewMetadata()
	m.Each(func(k string, v any) {
		out.Set(k, CloneValue(v))
	})
	return out
}

// ToMap converts the metadata to plain nested maps, dropping order
func (m *Metadata) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, m.Len())
	m.Each(func(k string, v any) {
		out[k] = plain(v)
	})
	return out
}

// Equal reports whether both mappings hold the same keys in the same order
// with equal values
func (m *Metadata) Equal(other *Metadata) bool {
	if m.Len() != other.Len() {
		return false
	}
	a, err := json.Marshal(m)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return string(a) == string(b)
}

// MarshalJSON encodes the fields in order
func (m *Metadata) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m.fields.MarshalJSON()
}

// MarshalYAML encodes the fields as an ordered YAML mapping
func (m *Metadata) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	m.Each(func(k string, v any) {
		if err != nil {
			return
		}
		var value yaml.Node
		if err = value.Encode(v); err != nil {
			err = errors.Wrapf(err, "failed to encode field %q", k)
			return
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping keeping key order. Nested mappings
// become *Metadata as well.
func (m *Metadata) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: expected a mapping", node.Line)
	}

	if m.fields == nil {
		m.fields = orderedmap.New[string, any]()
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		value, err := decodeNode(valueNode)
		if err != nil {
			return errors.Wrapf(err, "field %q", keyNode.Value)
		}
		m.fields.Set(keyNode.Value, value)
	}
	return nil
}

func decodeNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.MappingNode:
		nested := NewMetadata()
		if err := nested.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return nested, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	default:
		return scalarValue(node)
	}
}

// CloneValue deep copies a JSON-like value
func CloneValue(v any) any {
	switch val := v.(type) {
	case *Metadata:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case map[string]any:
		return MetadataFromMap(val)
	default:
		return val
	}
}

// normalize turns plain maps into *Metadata
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return MetadataFromMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return val
	}
}

// plain turns *Metadata into plain maps
func plain(v any) any {
	switch val := v.(type) {
	case *Metadata:
		return val.ToMap()
	case Literal:
		return val.Value()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	default:
		return val
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
