package filtergen

import (
	"github.com/rpattn/gqlfilter/internal/schema"

	"github.com/99designs/gqlgen/plugin"
	"github.com/vektah/gqlparser/v2/ast"
)

var (
	_ plugin.Plugin               = (*Plugin)(nil)
	_ plugin.EarlySourcesInjector = (*Plugin)(nil)
)

// Plugin adds filter input types to a gqlgen build. Resolvers reference the
// generated types in their arguments, so everything is injected before
// gqlgen loads the schema; the plugin reads the same schema sources gqlgen
// was configured with.
//
// The directives are schema-only; configure them with skip_runtime in
// gqlgen.yml.
type Plugin struct {
	cfg     Config
	sources []*ast.Source
}

// New creates the plugin for the given schema sources.
func New(cfg Config, sources ...*ast.Source) *Plugin {
	return &Plugin{cfg: cfg, sources: sources}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string {
	return "filtergen"
}

// InjectSourcesEarly implements plugin.EarlySourcesInjector. gqlgen declares
// @goField itself, so only the filter directives are added.
func (p *Plugin) InjectSourcesEarly() ([]*ast.Source, error) {
	missing, err := schema.MissingDirectives(p.sources...)
	if err != nil {
		return nil, err
	}

	var out []*ast.Source
	for _, src := range missing {
		if src != schema.GoFieldDirectives {
			out = append(out, src)
		}
	}

	s, err := synthesizeSources(p.cfg, p.sources...)
	if err != nil {
		return nil, err
	}
	if defs := s.Definitions(); len(defs) > 0 {
		out = append(out, s.Source(OutputName))
	}
	return out, nil
}
