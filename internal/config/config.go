package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	maxConfigFileBytes int64 = 64 << 10

	appDirName     = "quickpanel"
	configFileName = "config.yaml"

	DefaultWindowTitle  = "quickpanel"
	DefaultWindowWidth  = 700
	DefaultWindowHeight = 420
	DefaultTopMargin    = 54
	DefaultLogLevel     = "info"
)

// userConfigDirFn and userHomeDirFn are test seams for DefaultPath.
var (
	userConfigDirFn = os.UserConfigDir
	userHomeDirFn   = os.UserHomeDir
)

// WindowConfig holds the main window geometry in logical pixels.
type WindowConfig struct {
	Title     string `yaml:"title" json:"title"`
	Width     int    `yaml:"width" json:"width"`
	Height    int    `yaml:"height" json:"height"`
	TopMargin int    `yaml:"top_margin" json:"top_margin"`
}

// Config is the quickpanel startup configuration. The application only
// reads it; nothing is ever written back.
type Config struct {
	// ToggleShortcut is the global shortcut spec, e.g. "ctrl+backslash".
	// Empty means the platform default.
	ToggleShortcut string       `yaml:"toggle_shortcut" json:"toggle_shortcut"`
	Window         WindowConfig `yaml:"window" json:"window"`
	AlwaysOnTop    bool         `yaml:"always_on_top" json:"always_on_top"`
	IconVisible    bool         `yaml:"icon_visible" json:"icon_visible"`
	LogLevel       string       `yaml:"log_level" json:"log_level"`
	// NotifyShortcutFailure shows a desktop notice when the toggle shortcut
	// cannot be registered.
	NotifyShortcutFailure bool `yaml:"notify_shortcut_failure" json:"notify_shortcut_failure"`
}

// DefaultConfig returns the built-in configuration. ToggleShortcut is left
// empty so the caller picks the platform default.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     DefaultWindowTitle,
			Width:     DefaultWindowWidth,
			Height:    DefaultWindowHeight,
			TopMargin: DefaultTopMargin,
		},
		AlwaysOnTop:           true,
		IconVisible:           true,
		LogLevel:              DefaultLogLevel,
		NotifyShortcutFailure: true,
	}
}

// DefaultPath returns <UserConfigDir>/quickpanel/config.yaml, falling back
// to ~/.config and then the temp dir.
func DefaultPath() string {
	base, err := userConfigDirFn()
	if err != nil || strings.TrimSpace(base) == "" {
		home, homeErr := userHomeDirFn()
		if homeErr != nil {
			slog.Warn("[config] using temp dir as config path fallback", "error", errors.Join(err, homeErr))
			base = os.TempDir()
		} else {
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, appDirName, configFileName)
}

// Load reads the config at path. A missing or empty file yields the
// defaults. A malformed file yields the defaults plus the parse error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, errors.New("config path required")
	}

	raw, err := readLimitedFile(path, maxConfigFileBytes)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		slog.Warn("[config] failed to parse config, using defaults", "path", path, "error", err)
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	normalize(&cfg)
	return cfg, nil
}

// normalize replaces out-of-range values with defaults. The shortcut spec is
// only trimmed: an invalid one must still surface as a parse failure when
// the shortcut is set up.
func normalize(cfg *Config) {
	defaults := DefaultConfig()

	cfg.ToggleShortcut = strings.TrimSpace(cfg.ToggleShortcut)

	cfg.Window.Title = strings.TrimSpace(cfg.Window.Title)
	if cfg.Window.Title == "" {
		cfg.Window.Title = defaults.Window.Title
	}
	if cfg.Window.Width <= 0 {
		if cfg.Window.Width < 0 {
			slog.Warn("[config] window.width out of range, using default", "value", cfg.Window.Width, "default", defaults.Window.Width)
		}
		cfg.Window.Width = defaults.Window.Width
	}
	if cfg.Window.Height <= 0 {
		if cfg.Window.Height < 0 {
			slog.Warn("[config] window.height out of range, using default", "value", cfg.Window.Height, "default", defaults.Window.Height)
		}
		cfg.Window.Height = defaults.Window.Height
	}
	if cfg.Window.TopMargin < 0 {
		slog.Warn("[config] window.top_margin out of range, using default", "value", cfg.Window.TopMargin, "default", defaults.Window.TopMargin)
		cfg.Window.TopMargin = defaults.Window.TopMargin
	}

	level := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := ParseLogLevel(level); !ok {
		if level != "" {
			slog.Warn("[config] unknown log_level, using default", "value", cfg.LogLevel, "default", defaults.LogLevel)
		}
		level = defaults.LogLevel
	}
	cfg.LogLevel = level
}

// ParseLogLevel maps a config log level name to a slog level.
func ParseLogLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func readLimitedFile(path string, maxBytes int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("config file exceeds %d bytes", maxBytes)
	}
	return raw, nil
}
