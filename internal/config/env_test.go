package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port    int `env:"NEONRAID_TEST_PORT" envDefault:"2222"`
	Logging LoggingConfig
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 2222 {
		t.Fatalf("expected default port 2222, got %d", cfg.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("NEONRAID_TEST_PORT", "2300")
	t.Setenv("NEONRAID_LOG_LEVEL", "debug")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 2300 {
		t.Fatalf("port = %d, want 2300", cfg.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("NEONRAID_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
