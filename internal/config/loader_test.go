package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, found, err := Load(New(t.TempDir()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected no config file to be found")
	}

	d := DefaultConfig()
	if cfg.OutputPath != d.OutputPath || cfg.DefaultScalar != "String" || cfg.Negation {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if len(cfg.SchemaPaths) != 1 || cfg.SchemaPaths[0] != d.SchemaPaths[0] {
		t.Fatalf("unexpected schema paths %v", cfg.SchemaPaths)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`schema:
  paths:
    - api/*.graphql
output:
  path: api/filters.graphql
synth:
  negation: true
  default_scalar: ID
`)
	if err := os.WriteFile(filepath.Join(dir, "filtergen.yaml"), content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, found, err := Load(New(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected config file to be found")
	}
	if !cfg.Negation || cfg.DefaultScalar != "ID" || cfg.OutputPath != "api/filters.graphql" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.ServerAddr != ":8080" {
		t.Fatalf("expected unset keys to keep defaults, got %s", cfg.ServerAddr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FILTERGEN_SYNTH_DEFAULT_SCALAR", "ID")
	t.Setenv("FILTERGEN_SERVER_ADDR", ":9090")

	cfg, _, err := Load(New(t.TempDir()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultScalar != "ID" || cfg.ServerAddr != ":9090" {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
}
