// Package config loads scenario parameters from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 1e-4
	DefaultDuration  = 2.0
	DefaultNodes     = 21
	DefaultLength    = 1.0
	DefaultMass      = 1.0
	DefaultStiffness = 1e4
	DefaultDamping   = 0.5
	DefaultRecordHz  = 200.0
)

type Config struct {
	Scenario  string  `yaml:"scenario"`
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	Nodes     int     `yaml:"nodes"`
	Length    float64 `yaml:"length"`
	Mass      float64 `yaml:"mass"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Gravity   float64 `yaml:"gravity"`
	RecordHz  float64 `yaml:"record_hz"`
}

func Default() *Config {
	return &Config{
		Scenario:  "cantilever",
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Nodes:     DefaultNodes,
		Length:    DefaultLength,
		Mass:      DefaultMass,
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
		Gravity:   9.81,
		RecordHz:  DefaultRecordHz,
	}
}

// Load reads a YAML config, filling unset fields from defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if c.Nodes < 2 {
		return fmt.Errorf("config: need at least 2 nodes, got %d", c.Nodes)
	}
	if c.Stiffness <= 0 {
		return fmt.Errorf("config: stiffness must be positive, got %g", c.Stiffness)
	}
	return nil
}

// RecordEvery converts the sampling rate into a step skip count.
func (c *Config) RecordEvery() int {
	if c.RecordHz <= 0 {
		return 1
	}
	every := int(1.0 / (c.RecordHz * c.Dt))
	if every < 1 {
		every = 1
	}
	return every
}
