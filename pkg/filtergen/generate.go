// Package filtergen generates Condition and Filter input types for models
// annotated with @filter, either standalone or as a gqlgen plugin.
package filtergen

import (
	"fmt"

	"github.com/rpattn/gqlfilter/internal/registry"
	"github.com/rpattn/gqlfilter/internal/schema"
	"github.com/rpattn/gqlfilter/internal/synth"

	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2/ast"
)

// OutputName is the source name of generated SDL.
const OutputName = "filters.generated.graphql"

// Config controls generation.
type Config struct {
	// Negation adds NOT to the BaseOperator enum.
	Negation bool
	// DefaultScalar is used for filters without a known type. Defaults to String.
	DefaultScalar string
	Logger        zerolog.Logger
}

func (c Config) synthOptions() []synth.Option {
	return []synth.Option{
		synth.WithLogger(c.Logger),
		synth.WithNegation(c.Negation),
		synth.WithDefaultScalar(c.DefaultScalar),
	}
}

// Generate loads annotated SDL sources and returns the generated filter
// types as a single source, or nil when no model declares filters.
func Generate(cfg Config, sources ...*ast.Source) (*ast.Source, error) {
	defs, err := GenerateDefinitions(cfg, sources...)
	if err != nil || len(defs) == 0 {
		return nil, err
	}
	return schema.Source(OutputName, defs), nil
}

// GenerateDefinitions returns the generated types themselves. The sources
// together with the generated types must form a valid schema.
func GenerateDefinitions(cfg Config, sources ...*ast.Source) ([]*ast.Definition, error) {
	s, err := synthesizeSources(cfg, sources...)
	if err != nil {
		return nil, err
	}

	defs := s.Definitions()
	if len(defs) == 0 {
		return nil, nil
	}

	base, err := schema.MissingDirectives(sources...)
	if err != nil {
		return nil, err
	}
	if _, err := schema.Validate(defs, append(base, sources...)...); err != nil {
		return nil, err
	}
	return defs, nil
}

func synthesizeSources(cfg Config, sources ...*ast.Source) (*synth.Synthesizer, error) {
	reg := registry.New()
	meta := schema.NewMetadata()

	loader := schema.NewLoader(reg, meta, schema.WithLoaderLogger(cfg.Logger))
	if _, err := loader.LoadSources(sources...); err != nil {
		return nil, err
	}

	s := synth.New(reg, meta, cfg.synthOptions()...)
	filters, err := s.SynthesizeAll()
	if err != nil {
		return nil, fmt.Errorf("failed to generate filter types: %w", err)
	}

	cfg.Logger.Info().Int("filters", len(filters)).Msg("generated filter types")
	return s, nil
}
