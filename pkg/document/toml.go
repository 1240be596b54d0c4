package document

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"github.com/pkg/errors"
)

// PromptKey is the TOML field holding the body of a flat key/value command
const PromptKey = "prompt"

// DecodeTOML decodes a TOML document into metadata, keeping the order in
// which top-level keys and tables appear
func DecodeTOML(data []byte) (*Metadata, error) {
	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "invalid TOML")
	}

	order, err := tomlKeyOrder(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid TOML")
	}

	meta := NewMetadata()
	for _, key := range order {
		if v, ok := values[key]; ok {
			meta.Set(key, fromTOML(v))
			delete(values, key)
		}
	}
	for _, key := range sortedKeys(values) {
		meta.Set(key, fromTOML(values[key]))
	}
	return meta, nil
}

func tomlKeyOrder(data []byte) ([]string, error) {
	var (
		order   []string
		seen    = make(map[string]bool)
		inTable bool
	)
	add := func(it unstable.Iterator) {
		if !it.Next() {
			return
		}
		key := string(it.Node().Data)
		if !seen[key] {
			seen[key] = true
			order = append(order, key)
		}
	}

	p := unstable.Parser{}
	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.KeyValue:
			if !inTable {
				add(expr.Key())
			}
		case unstable.Table, unstable.ArrayTable:
			inTable = true
			add(expr.Key())
		}
	}
	return order, p.Error()
}

type promptField struct {
	Prompt string `toml:"prompt,multiline"`
}

// EncodeTOML renders metadata as TOML with the prompt as the last top-level
// key. Tables follow the prompt since TOML requires them after plain keys.
// Nil values are skipped as TOML has no null.
func EncodeTOML(meta *Metadata, prompt string) (string, error) {
	var plainKeys, tables strings.Builder
	var err error

	meta.Each(func(key string, value any) {
		if err != nil || value == nil || key == PromptKey {
			return
		}
		v := toTOML(value)
		var b []byte
		b, err = toml.Marshal(map[string]any{key: v})
		if err != nil {
			err = errors.Wrapf(err, "failed to encode field %q", key)
			return
		}
		if isTable(v) {
			tables.WriteString("\n")
			tables.Write(b)
		} else {
			plainKeys.Write(b)
		}
	})
	if err != nil {
		return "", err
	}

	b, err := toml.Marshal(promptField{Prompt: prompt})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode prompt")
	}
	return plainKeys.String() + string(b) + tables.String(), nil
}

func isTable(v any) bool {
	switch val := v.(type) {
	case map[string]any:
		return true
	case []any:
		if len(val) == 0 {
			return false
		}
		for _, item := range val {
			if _, ok := item.(map[string]any); !ok {
				return false
			}
		}
		return true
	}
	return false
}
