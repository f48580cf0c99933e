package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRanks   = 2
	DefaultSteps   = 1
	DefaultMaxMass = 4.0
	DefaultTheta   = 0.5
	DefaultLeafCap = 8
	DefaultScene   = "grid"
	DefaultN       = 8
	DefaultSpacing = 1.0
)

type Config struct {
	Ranks   int          `yaml:"ranks"`
	Steps   int          `yaml:"steps"`
	MaxMass float64      `yaml:"max_mass"`
	Theta   float64      `yaml:"theta"`
	LeafCap int          `yaml:"leaf_cap"`
	Scene   SceneConfig  `yaml:"scene"`
	Export  ExportConfig `yaml:"export"`
}

type SceneConfig struct {
	Kind    string  `yaml:"kind"` // grid, cluster, pair
	N       int     `yaml:"n"`    // bodies per axis (grid) or total (cluster)
	Spacing float64 `yaml:"spacing"`
	Seed    int64   `yaml:"seed"`
}

type ExportConfig struct {
	JSON string `yaml:"json"`
	CSV  string `yaml:"csv"`
}

func DefaultConfig() *Config {
	return &Config{
		Ranks:   DefaultRanks,
		Steps:   DefaultSteps,
		MaxMass: DefaultMaxMass,
		Theta:   DefaultTheta,
		LeafCap: DefaultLeafCap,
		Scene: SceneConfig{
			Kind:    DefaultScene,
			N:       DefaultN,
			Spacing: DefaultSpacing,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
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

// Validate rejects parameter combinations the gravity step would refuse
// anyway, so a bad config fails before any rank starts.
func (c *Config) Validate() error {
	if c.Ranks < 1 {
		return fmt.Errorf("config: ranks must be at least 1, got %d", c.Ranks)
	}
	if c.Steps < 1 {
		return fmt.Errorf("config: steps must be at least 1, got %d", c.Steps)
	}
	if c.MaxMass <= 0 {
		return fmt.Errorf("config: max_mass must be positive, got %v", c.MaxMass)
	}
	if c.Theta <= 0 || c.Theta > 1 {
		return fmt.Errorf("config: theta must be in (0, 1], got %v", c.Theta)
	}
	switch c.Scene.Kind {
	case "grid", "cluster", "pair":
	default:
		return fmt.Errorf("config: unknown scene %q", c.Scene.Kind)
	}
	return nil
}
