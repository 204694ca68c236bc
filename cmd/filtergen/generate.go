package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpattn/gqlfilter/pkg/filtergen"

	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write generated filter types to the output file",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := readSources(a.cfg.SchemaPaths, a.cfg.OutputPath)
			if err != nil {
				return err
			}

			src, err := filtergen.Generate(a.generatorConfig(), sources...)
			if err != nil {
				return err
			}
			if src == nil {
				a.logger.Warn().Strs("schema", a.cfg.SchemaPaths).Msg("no @filter annotations found, nothing to write")
				return nil
			}

			if a.cfg.OutputPath == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), src.Input)
				return err
			}

			if err := os.MkdirAll(filepath.Dir(a.cfg.OutputPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(a.cfg.OutputPath, []byte(src.Input), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", a.cfg.OutputPath, err)
			}

			a.logger.Info().Str("output", a.cfg.OutputPath).Msg("wrote filter types")
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	return cmd
}
