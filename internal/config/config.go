package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/step"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm      = "two-sum"
	DefaultBaseIntervalMs = 1000
	DefaultSpeed          = 1.0
	DefaultTheme          = "default"
	DefaultDataDir        = "runs"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Algorithm      string         `yaml:"algorithm"`
	Data           []step.Value   `yaml:"data,omitempty"`
	Params         map[string]any `yaml:"params,omitempty"`
	DataDir        string         `yaml:"data_dir"`
	BaseIntervalMs int            `yaml:"base_interval_ms"`
	Theme          string         `yaml:"theme"`
	Visualizer     Visualizer     `yaml:"visualizer"`
}

// Visualizer is the per-visualization option bag.
type Visualizer struct {
	Speed       float64 `yaml:"speed"`
	AutoPlay    bool    `yaml:"auto_play"`
	ShowIndices bool    `yaml:"show_indices"`
	ShowValues  bool    `yaml:"show_values"`
	Interactive bool    `yaml:"interactive"`
	// Colors overrides the theme colour of a role, keyed by role name.
	Colors map[string]string `yaml:"colors,omitempty"`
}

func DefaultVisualizer() Visualizer {
	return Visualizer{
		Speed:       DefaultSpeed,
		ShowIndices: true,
		ShowValues:  true,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:      DefaultAlgorithm,
		Data:           step.Ints(2, 7, 11, 15),
		DataDir:        DefaultDataDir,
		BaseIntervalMs: DefaultBaseIntervalMs,
		Theme:          DefaultTheme,
		Visualizer:     DefaultVisualizer(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.BaseIntervalMs <= 0 {
		return fmt.Errorf("%w: base_interval_ms must be positive, got %d", ErrInvalidConfig, c.BaseIntervalMs)
	}
	if !(c.Visualizer.Speed >= player.MinSpeed && c.Visualizer.Speed <= player.MaxSpeed) {
		return fmt.Errorf("%w: visualizer.speed must be within [%v, %v], got %v", ErrInvalidConfig, player.MinSpeed, player.MaxSpeed, c.Visualizer.Speed)
	}
	return nil
}

// BaseInterval is the delay between autoplay steps at speed 1.
func (c *Config) BaseInterval() time.Duration {
	return time.Duration(c.BaseIntervalMs) * time.Millisecond
}

// Clone returns a copy that shares nothing mutable with c.
func (c *Config) Clone() *Config {
	out := *c
	out.Data = step.CloneValues(c.Data)
	if c.Params != nil {
		out.Params = make(map[string]any, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	if c.Visualizer.Colors != nil {
		out.Visualizer.Colors = make(map[string]string, len(c.Visualizer.Colors))
		for k, v := range c.Visualizer.Colors {
			out.Visualizer.Colors[k] = v
		}
	}
	return &out
}
