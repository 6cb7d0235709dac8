package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the visualisation. Zero-valued keys missing
// from a file keep their defaults.
type Config struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	ParticleCount int     `yaml:"particle_count"`
	Charge        float64 `yaml:"charge"`
	Gravity       float64 `yaml:"gravity"`
	ChargeMode    string  `yaml:"charge_mode"`

	Friction         float64 `yaml:"friction"`
	Theta            float64 `yaml:"theta"`
	CollisionPadding float64 `yaml:"collision_padding"`
	MinRadius        float64 `yaml:"min_radius"`
	MaxRadius        float64 `yaml:"max_radius"`
	Seed             int64   `yaml:"seed"`

	Wander     bool `yaml:"wander"`
	IdleFrames int  `yaml:"idle_frames"`
	Sound      bool `yaml:"sound"`
	TPS        int  `yaml:"tps"`
}

// Default returns the reference visualisation settings
func Default() Config {
	return Config{
		Width:            960,
		Height:           500,
		ParticleCount:    200,
		Charge:           -1500,
		Gravity:          0.05,
		ChargeMode:       "anchor",
		Friction:         0.9,
		Theta:            0.8,
		CollisionPadding: 16,
		MinRadius:        4,
		MaxRadius:        16,
		IdleFrames:       180,
		TPS:              60,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges the layout cannot work without
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("canvas must be positive, got %vx%v", c.Width, c.Height)
	case c.ParticleCount < 1:
		return fmt.Errorf("particle_count must be at least 1, got %d", c.ParticleCount)
	case c.MinRadius < 0 || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("radius range [%v,%v) is invalid", c.MinRadius, c.MaxRadius)
	case c.CollisionPadding < c.MaxRadius:
		return fmt.Errorf("collision_padding %v is smaller than max_radius %v", c.CollisionPadding, c.MaxRadius)
	case c.Friction < 0 || c.Friction > 1:
		return fmt.Errorf("friction must be in [0,1], got %v", c.Friction)
	case c.Theta < 0:
		return fmt.Errorf("theta must not be negative, got %v", c.Theta)
	case c.TPS < 1:
		return fmt.Errorf("tps must be at least 1, got %d", c.TPS)
	case c.IdleFrames < 0:
		return fmt.Errorf("idle_frames must not be negative, got %d", c.IdleFrames)
	}
	if c.ChargeMode != "" && c.ChargeMode != "anchor" && c.ChargeMode != "particles" {
		return fmt.Errorf("charge_mode must be anchor or particles, got %q", c.ChargeMode)
	}
	return nil
}
