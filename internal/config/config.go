package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appDirName       = "pinwheel"
	settingsFileName = "settings.toml"
	wheelFileName    = "wheel.json"
	metricsSubDir    = "metrics"
)

// Config holds the daemon settings. The wheel tree itself lives in its own
// file (see WheelPath) and is managed by the wheel package.
type Config struct {
	// Hotkey is the hold-activation modifier combination, e.g. "super+alt".
	Hotkey string `koanf:"hotkey"`
	// CancelKey aborts an open wheel; "" disables.
	CancelKey string `koanf:"cancel_key"`
	// DeadZone is the no-selection radius around the wheel center, px.
	DeadZone float64 `koanf:"dead_zone"`
	// WheelRadius is the overlay wheel radius, px. The resolver does not
	// use it; it is passed through to the presenter.
	WheelRadius float64 `koanf:"wheel_radius"`
	// CommitPolicy is how folders open: "release" or "dwell".
	CommitPolicy string `koanf:"commit_policy"`
	// DwellMs is the hover time before a folder auto-opens (dwell policy).
	DwellMs int `koanf:"dwell_ms"`
	// KeystrokeDelayMs is the settle delay before synthesizing a combo.
	KeystrokeDelayMs int `koanf:"keystroke_delay_ms"`
	// Feedback enables the open/commit beeps.
	Feedback bool `koanf:"feedback"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Hotkey:           "super+alt",
		CancelKey:        "escape",
		DeadZone:         50,
		WheelRadius:      180,
		CommitPolicy:     "release",
		DwellMs:          400,
		KeystrokeDelayMs: 150,
		Feedback:         true,
	}
}

// Load reads settings from the config file, if present, over the defaults.
// A .env file or PINWHEEL_CONFIG in the environment can point somewhere
// other than the default XDG location.
func Load() (*Config, error) {
	// .env is optional; ignore absence.
	_ = godotenv.Load()

	cfg := Default()

	path, err := settingsPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Hotkey == "" {
		return fmt.Errorf("hotkey must not be empty")
	}
	if c.DeadZone < 0 {
		return fmt.Errorf("dead_zone must be >= 0")
	}
	switch c.CommitPolicy {
	case "release", "dwell":
	default:
		return fmt.Errorf("commit_policy must be \"release\" or \"dwell\", got %q", c.CommitPolicy)
	}
	if c.DwellMs <= 0 {
		return fmt.Errorf("dwell_ms must be > 0")
	}
	return nil
}

// DwellDelay returns DwellMs as a duration.
func (c *Config) DwellDelay() time.Duration {
	return time.Duration(c.DwellMs) * time.Millisecond
}

// KeystrokeDelay returns KeystrokeDelayMs as a duration.
func (c *Config) KeystrokeDelay() time.Duration {
	return time.Duration(c.KeystrokeDelayMs) * time.Millisecond
}

// Dir returns the application config directory, honoring PINWHEEL_CONFIG.
func Dir() (string, error) {
	if dir := os.Getenv("PINWHEEL_CONFIG"); dir != "" {
		return dir, nil
	}
	return filepath.Join(xdg.ConfigHome, appDirName), nil
}

func settingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}

// SettingsPath returns the settings file path (exported for CLI commands).
func SettingsPath() (string, error) {
	return settingsPath()
}

// WheelPath returns the wheel tree file path.
func WheelPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, wheelFileName), nil
}

// MetricsDir returns the metrics directory path.
func MetricsDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, metricsSubDir), nil
}
