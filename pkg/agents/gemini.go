package agents

import (
	"os"
	"strings"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/pkg/errors"
)

// geminiAdapter stores commands as flat TOML documents whose prompt field
// holds the body. Skills use the shared markdown layout.
type geminiAdapter struct {
	*markdownAdapter
}

func newGeminiAdapter(exclusions exclusionTable) *geminiAdapter {
	base := newMarkdownAdapter(geminiProfile(), exclusions)
	return &geminiAdapter{markdownAdapter: base}
}

// Parse reads a TOML command or a skill directory
func (a *geminiAdapter) Parse(t document.ContentType, location string) (*document.Document, error) {
	if t == document.Skill {
		return a.markdownAdapter.Parse(t, location)
	}

	content, err := os.ReadFile(location)
	if err != nil {
		return nil, document.NewParseError(location, errors.Wrap(err, "failed to read command file"))
	}
	meta, err := document.DecodeTOML(content)
	if err != nil {
		return nil, document.NewParseError(location, err)
	}

	raw, ok := meta.Get(document.PromptKey)
	if !ok {
		return nil, document.NewParseError(location, errors.Errorf("missing required %q field", document.PromptKey))
	}
	prompt, ok := raw.(string)
	if !ok {
		return nil, document.NewParseError(location, errors.Errorf("%q must be a string", document.PromptKey))
	}
	meta.Delete(document.PromptKey)

	return &document.Document{
		Type:     document.Command,
		Metadata: meta,
		Body:     prompt,
		Path:     location,
	}, nil
}

// Validate checks the document, naming the body after the prompt field for commands
func (a *geminiAdapter) Validate(doc *document.Document) error {
	if doc.Type == document.Skill {
		return a.markdownAdapter.Validate(doc)
	}
	v := *a.markdownAdapter
	v.bodyField = document.PromptKey
	return v.Validate(doc)
}

// Stringify renders commands as TOML with the prompt last. A blank
// description is omitted.
func (a *geminiAdapter) Stringify(doc *document.Document) (string, error) {
	if doc.Type == document.Skill {
		return a.markdownAdapter.Stringify(doc)
	}

	meta := doc.Metadata.Clone()
	if meta == nil {
		meta = document.NewMetadata()
	}
	if desc, ok := meta.Get("description"); ok {
		if s, isString := desc.(string); isString && strings.TrimSpace(s) == "" {
			meta.Delete("description")
		}
	}
	return document.EncodeTOML(meta, doc.Body)
}
