// Package config loads simulation settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file location relative to the working directory.
const DefaultPath = "config/kinetic3d.yaml"

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	TickRate              int           `yaml:"tick_rate"`
	WaitStep              time.Duration `yaml:"wait_step"`
	Gravity               rl.Vector3    `yaml:"gravity"`
	ParticleGravity       float32       `yaml:"particle_gravity"`
	ParticleLimit         int           `yaml:"particle_limit"`
	Integration           string        `yaml:"integration"` // accumulate | acceleration
	GravitationalConstant float32       `yaml:"gravitational_constant"`
	ResolveContacts       bool          `yaml:"resolve_contacts"`
	Restitution           float32       `yaml:"restitution"`
	LogLevel              string        `yaml:"log_level"`
	LogFile               string        `yaml:"log_file,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		TickRate:              30,
		WaitStep:              time.Millisecond,
		Gravity:               rl.Vector3{Y: -9.81},
		ParticleGravity:       -50,
		Integration:           "accumulate",
		GravitationalConstant: 0,
		ResolveContacts:       true,
		Restitution:           0.2,
		LogLevel:              "info",
	}
}

// Load reads path on top of Default. A missing file yields the defaults; a
// malformed or invalid one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick_rate %d must be positive", ErrInvalid, c.TickRate))
	}
	if c.WaitStep <= 0 {
		errs = append(errs, fmt.Errorf("%w: wait_step %v must be positive", ErrInvalid, c.WaitStep))
	}
	if c.ParticleLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: particle_limit %d is negative", ErrInvalid, c.ParticleLimit))
	}
	switch c.Integration {
	case "", "accumulate", "acceleration":
	default:
		errs = append(errs, fmt.Errorf("%w: integration %q", ErrInvalid, c.Integration))
	}
	if c.GravitationalConstant < 0 {
		errs = append(errs, fmt.Errorf("%w: gravitational_constant %v is negative", ErrInvalid, c.GravitationalConstant))
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		errs = append(errs, fmt.Errorf("%w: restitution %v outside [0, 1]", ErrInvalid, c.Restitution))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel))
	}
	return errors.Join(errs...)
}
