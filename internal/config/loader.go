package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds filtergen settings.
type Config struct {
	SchemaPaths   []string
	OutputPath    string
	Negation      bool
	DefaultScalar string
	ServerAddr    string
	AllowedOrigin []string
	LogLevel      string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		SchemaPaths:   []string{"graph/*.graphqls"},
		OutputPath:    "graph/filters.generated.graphqls",
		DefaultScalar: "String",
		ServerAddr:    ":8080",
		AllowedOrigin: []string{"http://localhost:3000"},
		LogLevel:      "info",
	}
}

// New returns a viper instance reading filtergen.yaml from configPath with
// FILTERGEN_* environment overrides, e.g. FILTERGEN_SYNTH_NEGATION.
func New(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("filtergen")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.SetEnvPrefix("FILTERGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("schema.paths", d.SchemaPaths)
	v.SetDefault("output.path", d.OutputPath)
	v.SetDefault("synth.negation", d.Negation)
	v.SetDefault("synth.default_scalar", d.DefaultScalar)
	v.SetDefault("server.addr", d.ServerAddr)
	v.SetDefault("server.allowed_origins", d.AllowedOrigin)
	v.SetDefault("log.level", d.LogLevel)
	return v
}

// Load reads the config file if there is one. A missing file is not an
// error; found reports whether one was read.
func Load(v *viper.Viper) (cfg Config, found bool, err error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, false, err
		}
	} else {
		found = true
	}

	cfg = Config{
		SchemaPaths:   v.GetStringSlice("schema.paths"),
		OutputPath:    v.GetString("output.path"),
		Negation:      v.GetBool("synth.negation"),
		DefaultScalar: v.GetString("synth.default_scalar"),
		ServerAddr:    v.GetString("server.addr"),
		AllowedOrigin: v.GetStringSlice("server.allowed_origins"),
		LogLevel:      v.GetString("log.level"),
	}
	return cfg, found, nil
}
