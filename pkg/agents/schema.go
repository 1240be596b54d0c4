package agents

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

// HubFrontmatter documents the frontmatter of a hub document
type HubFrontmatter struct {
	Name                   string      `json:"name,omitempty" jsonschema:"description=Skill name, required for skills"`
	Description            string      `json:"description,omitempty" jsonschema:"description=One line summary of what the command or skill does"`
	ArgumentHint           string      `json:"argument-hint,omitempty" jsonschema:"description=Hint shown for the arguments the command expects"`
	AllowedTools           []string    `json:"allowed-tools,omitempty" jsonschema:"description=Tools the assistant may use without asking"`
	Model                  string      `json:"model,omitempty" jsonschema:"description=Model override"`
	DisableModelInvocation bool        `json:"disable-model-invocation,omitempty" jsonschema:"description=Prevent the model from invoking the skill on its own"`
	Source                 string      `json:"source,omitempty" jsonschema:"description=Upstream origin such as owner/repo"`
	Chimera                HubSections `json:"chimera,omitempty" jsonschema:"description=Agent specific fields restored verbatim when applying to that agent"`
}

// HubSections holds one opaque mapping per agent
type HubSections struct {
	Claude   map[string]any `json:"claude,omitempty" jsonschema:"description=Fields only claude understands"`
	Gemini   map[string]any `json:"gemini,omitempty" jsonschema:"description=Fields only gemini understands"`
	Codex    map[string]any `json:"codex,omitempty" jsonschema:"description=Fields only codex understands"`
	OpenCode map[string]any `json:"opencode,omitempty" jsonschema:"description=Fields only opencode understands"`
}

// HubSchema returns the JSON schema of hub frontmatter
func HubSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	return reflector.Reflect(&HubFrontmatter{})
}

// HubSchemaJSON returns the indented JSON encoding of HubSchema
func HubSchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(HubSchema(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode hub schema")
	}
	return data, nil
}
