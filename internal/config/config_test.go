package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := "tick_rate: 60\nwait_step: 500us\ngravity: {x: 0, y: -20, z: 0}\nintegration: acceleration\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickRate != 60 || cfg.WaitStep != 500*time.Microsecond {
		t.Errorf("Expected tick_rate 60 and wait_step 500us, got %d %v", cfg.TickRate, cfg.WaitStep)
	}
	if cfg.Gravity.Y != -20 || cfg.Integration != "acceleration" {
		t.Errorf("Unexpected gravity/integration %v %q", cfg.Gravity, cfg.Integration)
	}
	if cfg.ParticleGravity != Default().ParticleGravity || cfg.LogLevel != "info" {
		t.Error("Expected unspecified fields to keep their defaults")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(path, []byte("tick_rate: [oops"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	_ = os.WriteFile(path, []byte("tick_rate: 0\nrestitution: 2\n"), 0644)
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sim.yaml")
	cfg := Default()
	cfg.TickRate = 120
	cfg.LogFile = "logs/sim.log"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Expected %+v, got %+v", cfg, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tick rate", func(c *Config) { c.TickRate = -1 }},
		{"wait step", func(c *Config) { c.WaitStep = 0 }},
		{"integration", func(c *Config) { c.Integration = "verlet" }},
		{"restitution", func(c *Config) { c.Restitution = -0.1 }},
		{"gravitational constant", func(c *Config) { c.GravitationalConstant = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"particle limit", func(c *Config) { c.ParticleLimit = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default config should be valid, got %v", err)
	}
}
