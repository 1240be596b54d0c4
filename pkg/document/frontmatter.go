package document

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseMarkdown splits a markdown document into its YAML frontmatter and
// body. Metadata is nil when the document does not start with a
// frontmatter block; an empty block yields empty, non-nil metadata.
func ParseMarkdown(content string) (*Metadata, string, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(content, frontmatterDelimiter) {
		return nil, content, nil
	}

	lines := strings.SplitAfter(content, "\n")
	if strings.TrimRight(lines[0], "\r\n") != frontmatterDelimiter {
		return nil, content, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r\n") == frontmatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, "", errors.New("unterminated frontmatter: missing closing '---'")
	}

	raw := strings.Join(lines[1:end], "")
	body := strings.TrimLeft(strings.Join(lines[end+1:], ""), "\r\n")

	meta := NewMetadata()
	if strings.TrimSpace(raw) == "" {
		return meta, body, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return nil, "", errors.Wrap(err, "invalid frontmatter")
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 0 {
		return meta, body, nil
	}
	if err := meta.UnmarshalYAML(&node); err != nil {
		return nil, "", errors.Wrap(err, "invalid frontmatter")
	}
	return meta, body, nil
}

// FormatMarkdown renders metadata as YAML frontmatter followed by body.
// Nil metadata renders the body alone.
func FormatMarkdown(meta *Metadata, body string) (string, error) {
	if meta == nil {
		return body, nil
	}

	var sb strings.Builder
	sb.WriteString(frontmatterDelimiter + "\n")
	if meta.Len() > 0 {
		yamlText, err := EncodeYAML(meta)
		if err != nil {
			return "", err
		}
		sb.WriteString(yamlText)
	}
	sb.WriteString(frontmatterDelimiter + "\n")
	if body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
	}
	return sb.String(), nil
}

// EncodeYAML encodes metadata as a YAML mapping with two space indentation
func EncodeYAML(meta *Metadata) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", errors.Wrap(err, "failed to encode frontmatter")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "failed to encode frontmatter")
	}
	return buf.String(), nil
}
