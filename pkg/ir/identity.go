package ir

import (
	"strings"

	"github.com/pkg/errors"
)

// Identity names one supported agent. The set is closed: every value lives
// in All, and the adapter registry refuses to compile when an identity is
// added here without a matching adapter.
type Identity string

// Supported agent identities
const (
	Claude   Identity = "claude"
	Gemini   Identity = "gemini"
	Codex    Identity = "codex"
	OpenCode Identity = "opencode"
	Chimera  Identity = "chimera"
)

// All lists every supported identity in display order
var All = [...]Identity{Claude, Gemini, Codex, OpenCode, Chimera}

// String returns the identity name
func (i Identity) String() string { return string(i) }

// IsHub reports whether the identity is the multi-agent hub
func (i Identity) IsHub() bool { return i == Chimera }

// Valid reports whether the identity is one of All
func (i Identity) Valid() bool {
	for _, id := range All {
		if id == i {
			return true
		}
	}
	return false
}

// ParseIdentity parses an identity name case-insensitively
func ParseIdentity(s string) (Identity, error) {
	id := Identity(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", errors.Errorf("unknown agent %q: expected one of %s", s, strings.Join(Names(), ", "))
	}
	return id, nil
}

// Names returns the names of all identities
func Names() []string {
	names := make([]string, 0, len(All))
	for _, id := range All {
		names = append(names, id.String())
	}
	return names
}
