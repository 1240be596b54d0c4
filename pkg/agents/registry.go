package agents

import (
	"fmt"
	"sort"

	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/pkg/errors"
)

// constructors holds one entry per identity, in ir.All order
var constructors = [...]struct {
	id      ir.Identity
	profile func() profile
}{
	{ir.Claude, claudeProfile},
	{ir.Gemini, geminiProfile},
	{ir.Codex, codexProfile},
	{ir.OpenCode, opencodeProfile},
	{ir.Chimera, chimeraProfile},
}

// Adding an identity without a constructor, or the reverse, overflows one
// of these constants and fails the build.
const (
	_ = uint(len(constructors) - len(ir.All))
	_ = uint(len(ir.All) - len(constructors))
)

// Registry maps every agent identity to its adapter
type Registry struct {
	adapters map[ir.Identity]Adapter
}

// NewRegistry builds the adapters for the whole identity set
func NewRegistry() *Registry {
	profiles := make(map[ir.Identity]profile, len(constructors))
	for _, c := range constructors {
		p := c.profile()
		if p.identity != c.id {
			panic(fmt.Sprintf("agents: profile for %s reports identity %s", c.id, p.identity))
		}
		profiles[c.id] = p
	}

	r := &Registry{adapters: make(map[ir.Identity]Adapter, len(profiles))}
	for id, p := range profiles {
		exclusions := buildExclusions(p, profiles)
		switch id {
		case ir.Gemini:
			r.adapters[id] = newGeminiAdapter(exclusions)
		case ir.Chimera:
			r.adapters[id] = newChimeraAdapter(profiles, exclusions)
		default:
			r.adapters[id] = newMarkdownAdapter(p, exclusions)
		}
	}

	for _, id := range ir.All {
		if _, ok := r.adapters[id]; !ok {
			panic(fmt.Sprintf("agents: no adapter registered for %s", id))
		}
	}
	return r
}

// Get returns the adapter for an identity
func (r *Registry) Get(id ir.Identity) (Adapter, error) {
	adapter, ok := r.adapters[id]
	if !ok {
		return nil, errors.Errorf("unknown agent %q, expected one of %v", id, ir.Names())
	}
	return adapter, nil
}

// MustGet returns the adapter for an identity and panics if it is unknown
func (r *Registry) MustGet(id ir.Identity) Adapter {
	adapter, err := r.Get(id)
	if err != nil {
		panic(err)
	}
	return adapter
}

// Identities returns the registered identities sorted by name
func (r *Registry) Identities() []ir.Identity {
	ids := make([]ir.Identity, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
