package main

import (
	"strings"

	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/jingkaihe/chimera/pkg/library"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// agentValue is a pflag.Value holding one agent identity
type agentValue struct {
	id *ir.Identity
}

var _ pflag.Value = agentValue{}

func newAgentValue(id *ir.Identity) agentValue {
	return agentValue{id: id}
}

func (v agentValue) String() string {
	if v.id == nil {
		return ""
	}
	return v.id.String()
}

func (v agentValue) Set(s string) error {
	id, err := ir.ParseIdentity(s)
	if err != nil {
		return err
	}
	*v.id = id
	return nil
}

func (v agentValue) Type() string { return "agent" }

// parseAgents parses agent names from positional arguments
func parseAgents(args []string) ([]ir.Identity, error) {
	ids := make([]ir.Identity, 0, len(args))
	for _, arg := range args {
		id, err := ir.ParseIdentity(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseTypes turns the --type flag into content types, empty means both
func parseTypes(value string) ([]document.ContentType, error) {
	if strings.TrimSpace(value) == "" {
		return []document.ContentType{document.Command, document.Skill}, nil
	}
	t, ok := document.ParseContentType(value)
	if !ok {
		return nil, errors.Errorf("invalid type %q: expected command or skill", value)
	}
	return []document.ContentType{t}, nil
}

// newDiscovery builds a library discovery from the global flags and config
func newDiscovery() (*library.Discovery, error) {
	var opts []library.Option
	if viper.GetBool("global") {
		opts = append(opts, library.WithHomeRoot())
	} else if dir := viper.GetString("library_dir"); dir != "" {
		opts = append(opts, library.WithRoot(dir))
	} else {
		opts = append(opts, library.WithRoot("."))
	}

	for _, id := range ir.All {
		if dir := viper.GetString("agents." + id.String() + ".dir"); dir != "" {
			opts = append(opts, library.WithAgentDir(id, dir))
		}
	}

	return library.NewDiscovery(opts...)
}
