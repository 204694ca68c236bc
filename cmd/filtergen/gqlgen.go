package main

import (
	"fmt"

	"github.com/rpattn/gqlfilter/pkg/filtergen"

	"github.com/99designs/gqlgen/api"
	gqlconfig "github.com/99designs/gqlgen/codegen/config"
	"github.com/spf13/cobra"
)

func newGqlgenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gqlgen",
		Short: "Run gqlgen with filter types injected into the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gqlconfig.LoadConfigFromDefaultLocations()
			if err != nil {
				return fmt.Errorf("failed to load gqlgen config: %w", err)
			}

			p := filtergen.New(a.generatorConfig(), cfg.Sources...)
			if err := api.Generate(cfg, api.AddPlugin(p)); err != nil {
				return fmt.Errorf("gqlgen failed: %w", err)
			}

			a.logger.Info().Strs("schema", cfg.SchemaFilename).Msg("gqlgen finished")
			return nil
		},
	}
}
