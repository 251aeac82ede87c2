package cadence

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// CameraConfig is the camera's starting state.
type CameraConfig struct {
	Zoom     float64 `yaml:"zoom"`
	Rotation float64 `yaml:"rotation"`
}

// WindowConfig configures the host window used by Run.
type WindowConfig struct {
	Title    string  `yaml:"title"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TPS      int     `yaml:"tps"`
	UnitSize float64 `yaml:"unit_size"` // pixels per world unit
}

// Config holds the session settings for a Scene and its host loop.
type Config struct {
	// Speed is the Manager's global speed.
	Speed float32 `yaml:"speed"`
	// Workers > 1 interpolates objects on a worker pool of that size.
	Workers int  `yaml:"workers"`
	Debug   bool `yaml:"debug"`
	// LogLevel is a zerolog level name. Empty keeps the current level.
	LogLevel string `yaml:"log_level"`

	Camera CameraConfig `yaml:"camera"`
	Window WindowConfig `yaml:"window"`
}

// DefaultConfig returns the settings used for anything a config file leaves
// out.
func DefaultConfig() Config {
	return Config{
		Speed:   1,
		Workers: 1,
		Camera:  CameraConfig{Zoom: 1},
		Window: WindowConfig{
			Title:    "cadence",
			Width:    1280,
			Height:   720,
			TPS:      60,
			UnitSize: 16,
		},
	}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Speed < 0 {
		errs = append(errs, fmt.Errorf("speed %v must not be negative", c.Speed))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	if c.Camera.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("camera.zoom %v must be positive", c.Camera.Zoom))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps %d must be positive", c.Window.TPS))
	}
	if c.Window.UnitSize <= 0 {
		errs = append(errs, fmt.Errorf("window.unit_size %v must be positive", c.Window.UnitSize))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level. An empty LogLevel yields
// zerolog.NoLevel, which leaves the logger unchanged.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.NoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
