// Package config handles application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"go.aimuz.me/toolbox/internal/geometry"
	"go.aimuz.me/toolbox/internal/popup"
)

const (
	appName        = "toolbox"
	configFileName = "config.json"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config represents the application configuration.
type Config struct {
	Window WindowConfig `json:"window" yaml:"window"`
	Hotkey HotkeyConfig `json:"hotkey" yaml:"hotkey"`
	Log    LogConfig    `json:"log" yaml:"log"`

	// Probe selects how the taskbar height is measured: "workarea" or "window".
	Probe string `json:"probe,omitempty" yaml:"probe,omitempty"`
	// Locale overrides the tray menu language, e.g. "zh-CN".
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// WindowConfig configures the popup window.
type WindowConfig struct {
	Title           string      `json:"title" yaml:"title"`
	URL             string      `json:"url" yaml:"url"`
	Width           int         `json:"width" yaml:"width"`
	Height          int         `json:"height" yaml:"height"`
	Margin          int         `json:"margin" yaml:"margin"`
	Corner          string      `json:"corner" yaml:"corner"`
	AlwaysOnTop     bool        `json:"always_on_top" yaml:"always_on_top"`
	Accent          popup.Color `json:"accent" yaml:"accent"`
	HideOnBlur      bool        `json:"hide_on_blur" yaml:"hide_on_blur"`
	BlurGrace       Duration    `json:"blur_grace" yaml:"blur_grace"`
	CreateAtStartup bool        `json:"create_at_startup" yaml:"create_at_startup"`
}

// HotkeyConfig configures the global toggle shortcut.
type HotkeyConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Keys    string `json:"keys" yaml:"keys"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// Duration is a time.Duration written as "200ms" in config files.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	spec := popup.DefaultSpec()
	return &Config{
		Window: WindowConfig{
			Title:       spec.Title,
			URL:         spec.URL,
			Width:       spec.Size.Width,
			Height:      spec.Size.Height,
			Margin:      spec.Margin,
			Corner:      string(spec.Corner),
			AlwaysOnTop: spec.AlwaysOnTop,
			Accent:      spec.Accent,
			HideOnBlur:  true,
			BlurGrace:   Duration(popup.DefaultBlurGrace),
		},
		Hotkey: HotkeyConfig{
			Keys: "ctrl+shift+space",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Probe: geometry.StrategyWorkArea,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// Load loads configuration from path, or from Path() when path is empty.
// Returns default config if the file doesn't exist. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of the defaults and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, w.Width, w.Height)
	}
	if w.Margin < 0 {
		return fmt.Errorf("%w: negative margin %d", ErrInvalid, w.Margin)
	}
	if w.BlurGrace < 0 {
		return fmt.Errorf("%w: negative blur_grace", ErrInvalid)
	}
	if _, err := geometry.ParseCorner(w.Corner); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !slices.Contains([]string{"", geometry.StrategyWorkArea, geometry.StrategyWindow}, c.Probe) {
		return fmt.Errorf("%w: unknown probe %q", ErrInvalid, c.Probe)
	}
	if !slices.Contains([]string{"", "text", "json"}, c.Log.Format) {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	if c.Hotkey.Enabled && c.Hotkey.Keys == "" {
		return fmt.Errorf("%w: hotkey enabled without keys", ErrInvalid)
	}
	return nil
}

// PopupSpec converts the window section into a popup.Spec.
func (c *Config) PopupSpec() popup.Spec {
	corner, err := geometry.ParseCorner(c.Window.Corner)
	if err != nil {
		corner = geometry.CornerBottomRight
	}
	return popup.Spec{
		Title:       c.Window.Title,
		URL:         c.Window.URL,
		Size:        geometry.Size{Width: c.Window.Width, Height: c.Window.Height},
		Margin:      c.Window.Margin,
		Corner:      corner,
		AlwaysOnTop: c.Window.AlwaysOnTop,
		Accent:      c.Window.Accent,
	}
}
