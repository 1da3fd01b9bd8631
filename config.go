package iris

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// envPrefix prefixes every environment override, e.g. IRIS_RING_DURATION.
const envPrefix = "IRIS_"

// Config holds window, timing and input settings for a Stage. It loads from
// YAML and can be overridden from IRIS_* environment variables.
type Config struct {
	Title  string `yaml:"title" env:"TITLE"`
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`

	RingDuration  time.Duration `yaml:"ring_duration" env:"RING_DURATION"`
	IntroDuration time.Duration `yaml:"intro_duration" env:"INTRO_DURATION"`

	WheelThreshold float64 `yaml:"wheel_threshold" env:"WHEEL_THRESHOLD"`
	WheelScale     float64 `yaml:"wheel_scale" env:"WHEEL_SCALE"`
	TouchThreshold float64 `yaml:"touch_threshold" env:"TOUCH_THRESHOLD"`

	// RingWidth is the stroke width of the ring drawn at the iris edge.
	// Zero disables the ring.
	RingWidth  float64 `yaml:"ring_width" env:"RING_WIDTH"`
	RingColor  Color   `yaml:"ring_color"`
	ClearColor Color   `yaml:"clear_color"`

	ShowFPS       bool   `yaml:"show_fps" env:"SHOW_FPS"`
	Debug         bool   `yaml:"debug" env:"DEBUG"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
	ScreenshotDir string `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`
}

// DefaultConfig returns the settings the navigator was tuned with.
func DefaultConfig() Config {
	return Config{
		Title:          "iris",
		Width:          1280,
		Height:         720,
		RingDuration:   RingDuration,
		IntroDuration:  IntroDuration,
		WheelThreshold: DefaultWheelThreshold,
		WheelScale:     DefaultWheelScale,
		TouchThreshold: DefaultTouchThreshold,
		RingWidth:      2,
		RingColor:      Color{R: 1, G: 1, B: 1, A: 0.6},
		ClearColor:     Color{R: 0, G: 0, B: 0, A: 1},
		LogLevel:       "info",
		ScreenshotDir:  "screenshots",
	}
}

// LoadConfig decodes YAML over DefaultConfig and validates the result.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return LoadConfig(data)
}

// ApplyEnv overrides fields from IRIS_* environment variables and
// revalidates.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return c.Validate()
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height))
	}
	if c.RingDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: ring_duration must be positive", ErrInvalidConfig))
	}
	if c.IntroDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: intro_duration must be positive", ErrInvalidConfig))
	}
	if c.WheelThreshold < 0 || c.TouchThreshold < 0 {
		errs = append(errs, fmt.Errorf("%w: thresholds must not be negative", ErrInvalidConfig))
	}
	if c.WheelScale <= 0 {
		errs = append(errs, fmt.Errorf("%w: wheel_scale must be positive", ErrInvalidConfig))
	}
	if c.RingWidth < 0 {
		errs = append(errs, fmt.Errorf("%w: ring_width must not be negative", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
