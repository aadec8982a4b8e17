package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside the viewer.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.MSAA < 0 {
		errs = append(errs, fmt.Errorf("graphics.msaa: %d", c.Graphics.MSAA))
	}
	if _, err := ParseHexColor(c.Graphics.Background); err != nil {
		errs = append(errs, fmt.Errorf("graphics.background: %w", err))
	}
	if c.Assets.Model == "" {
		errs = append(errs, errors.New("assets.model: empty path"))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: near %g far %g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.MinDistance > c.Camera.MaxDistance {
		errs = append(errs, fmt.Errorf("camera: min_distance %g > max_distance %g", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Camera.DampingFactor < 0 || c.Camera.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("camera.damping_factor: %g not in [0,1]", c.Camera.DampingFactor))
	}
	if c.Animation.PlaceholderMaxTime <= 0 {
		errs = append(errs, fmt.Errorf("animation.placeholder_max_time: %g", c.Animation.PlaceholderMaxTime))
	}
	switch c.Screenshot.Format {
	case "png", "webp":
	default:
		errs = append(errs, fmt.Errorf("screenshot.format: unknown %q", c.Screenshot.Format))
	}
	return errors.Join(errs...)
}

// ParseHexColor parses "#rrggbb" into RGB components in [0,1].
func ParseHexColor(s string) ([3]float32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return [3]float32{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("color %q: %w", s, err)
	}
	return [3]float32{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "glbview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "glbview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "glbview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "glbview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
