package renderer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config contains render settings. Field-of-view is in degrees in the file
// for readability and converted to radians by the camera builder in cmd.
type Config struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FieldOfView float64 `yaml:"field_of_view"`
	MaxDepth    int     `yaml:"max_depth"`
	NumWorkers  int     `yaml:"num_workers"` // 0 means one per CPU
	Gamma       float64 `yaml:"gamma"`
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:       800,
		Height:      400,
		FieldOfView: 60,
		MaxDepth:    5,
		NumWorkers:  0,
		Gamma:       1.0,
	}
}

// LoadConfig reads a YAML config file, filling unset fields from defaults
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %s: image size must be positive, got %dx%d", path, cfg.Width, cfg.Height)
	}
	if cfg.MaxDepth < 0 {
		return cfg, fmt.Errorf("config %s: max_depth must not be negative", path)
	}
	return cfg, nil
}
