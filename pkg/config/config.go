// Package config handles generation preset loading and saving. A
// preset bundles the sampling ranges, arm tube options and logging
// settings so a fleet of drones can be regenerated from a YAML file
// plus a list of seeds.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Boomstam/dronegen/pkg/arm"
	"github.com/Boomstam/dronegen/pkg/drone"
)

// Preset holds all generation settings.
type Preset struct {
	Name    string        `yaml:"name"`
	Ranges  drone.Ranges  `yaml:"ranges"`
	Arm     arm.Options   `yaml:"arm"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Preset with the built-in sampling ranges.
func Default() *Preset {
	return &Preset{
		Name:   "default",
		Ranges: drone.DefaultRanges(),
		Arm:    drone.DefaultArmOptions(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a preset from a YAML file. Fields missing from the file
// keep their default values.
func Load(path string) (*Preset, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading preset from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing preset %s: %w", path, err)
	}
	if err := p.Ranges.Validate(); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// SaveTo writes the preset to a specific path, creating parent
// directories as needed.
func (p *Preset) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
