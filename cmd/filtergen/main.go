package main

import (
	"os"
	"strings"

	"github.com/rpattn/gqlfilter/internal/config"
	"github.com/rpattn/gqlfilter/pkg/filtergen"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configDir string

	root := &cobra.Command{
		Use:          "filtergen",
		Short:        "Generate Condition and Filter input types for @filter annotated GraphQL models",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, configDir)
		},
	}

	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing filtergen.yaml")
	root.PersistentFlags().StringSlice("schema", nil, "schema files or globs to read")
	root.PersistentFlags().Bool("negation", false, "add NOT to the BaseOperator enum")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newGenerateCmd(a), newServeCmd(a), newGqlgenCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command, configDir string) error {
	a.v = config.New(configDir)
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"schema.paths":   "schema",
		"synth.negation": "negation",
		"log.level":      "log-level",
		"output.path":    "output",
		"server.addr":    "addr",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, found, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stderr })).
		Level(logLevel(cfg.LogLevel)).
		With().Timestamp().Logger()

	if found {
		a.logger.Debug().Str("file", a.v.ConfigFileUsed()).Msg("loaded config")
	} else {
		a.logger.Debug().Msg("no filtergen.yaml found, using defaults and env vars")
	}
	return nil
}

// logLevel parses level, falling back to info for blank or unknown values.
func logLevel(level string) zerolog.Level {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

func (a *app) generatorConfig() filtergen.Config {
	return filtergen.Config{
		Negation:      a.cfg.Negation,
		DefaultScalar: a.cfg.DefaultScalar,
		Logger:        a.logger,
	}
}
