package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"iconset/common"
)

// DefaultFile is the config file picked up from the working directory
const DefaultFile = "iconset.yaml"

// Config represents the application configuration
type Config struct {
	Source    string      `yaml:"source"`
	OutputDir string      `yaml:"output_dir"`
	Crop      CropConfig  `yaml:"crop"`
	Sizes     []int       `yaml:"sizes"`
	Watch     WatchConfig `yaml:"watch"`
}

type CropConfig struct {
	Variant       string  `yaml:"variant"`
	StripFraction float64 `yaml:"strip_fraction"`
}

type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Default returns the built-in configuration
func Default() *Config {
	opts := common.DefaultOptions()
	return &Config{
		Source:    "icons/newAvatar.png",
		OutputDir: opts.OutputDir,
		Crop: CropConfig{
			Variant:       opts.Variant.String(),
			StripFraction: opts.StripFraction,
		},
		Sizes: opts.Sizes,
		Watch: WatchConfig{DebounceMS: 500},
	}
}

// Load reads and parses the configuration file.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	return nil
}

// Options converts the config into generator options
func (c *Config) Options() (common.Options, error) {
	variant, err := common.ParseCropVariant(c.Crop.Variant)
	if err != nil {
		return common.Options{}, fmt.Errorf("crop.variant: %w", err)
	}

	opts := common.Options{
		Variant:       variant,
		StripFraction: c.Crop.StripFraction,
		Sizes:         append([]int(nil), c.Sizes...),
		OutputDir:     c.OutputDir,
	}
	if err := opts.Validate(); err != nil {
		return common.Options{}, err
	}
	return opts, nil
}

// Debounce returns the watch debounce interval
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
