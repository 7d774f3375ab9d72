package main

import (
	"testing"
	"time"

	"github.com/tomz197/neonraid/internal/config"
)

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	if w, h, err := s.getSize(); w != 80 || h != 24 || err != nil {
		t.Fatalf("getSize() = %d, %d, %v", w, h, err)
	}

	s.update(200, 50)
	if w, h, _ := s.getSize(); w != 200 || h != 50 {
		t.Errorf("after update getSize() = %d, %d, want 200, 50", w, h)
	}
}

func TestServerConfigDefaults(t *testing.T) {
	var cfg serverConfig
	if err := config.ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if cfg.Port != "2222" || cfg.Host != "::" {
		t.Errorf("address = %s:%s, want :::2222", cfg.Host, cfg.Port)
	}
	if cfg.IdleTimeout != 2*time.Minute {
		t.Errorf("IdleTimeout = %s, want 2m", cfg.IdleTimeout)
	}
}

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("SSH_IDLE_TIMEOUT", "30s")
	t.Setenv("NEONRAID_LOG_LEVEL", "debug")

	var cfg serverConfig
	if err := config.ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if cfg.Port != "2323" {
		t.Errorf("Port = %s, want 2323", cfg.Port)
	}
	if cfg.IdleTimeout != 30*time.Second {
		t.Errorf("IdleTimeout = %s, want 30s", cfg.IdleTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
}
