// Package config loads the client configuration from a YAML file, an optional
// .env file and environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	API       APIConfig       `yaml:"api"`
	Chat      ChatConfig      `yaml:"chat"`
	Upload    UploadConfig    `yaml:"upload"`
	UI        UIConfig        `yaml:"ui"`
	Log       LogConfig       `yaml:"log"`
	DevServer DevServerConfig `yaml:"devserver"`
}

// APIConfig holds the backend base URLs.
type APIConfig struct {
	// BaseURL serves courses, chat and document upload.
	BaseURL string `yaml:"base_url"`
	// VideoURL serves the lecture recording catalogue.
	VideoURL string `yaml:"video_url"`
	// BackendURL serves the stored document catalogue.
	BackendURL string        `yaml:"backend_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Chat modes.
const (
	ChatMock   = "mock"
	ChatRemote = "remote"
)

// ChatConfig selects the assistant.
type ChatConfig struct {
	// Mode is "mock" (canned offline replies) or "remote" (POST /chat).
	Mode    string        `yaml:"mode"`
	Timeout time.Duration `yaml:"timeout"`
}

// UploadConfig tunes the upload pipeline.
type UploadConfig struct {
	// Concurrency is the number of files uploaded at once. 1 keeps uploads
	// strictly sequential.
	Concurrency int `yaml:"concurrency"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	Dark              bool   `yaml:"dark"`
	PanelMin          int    `yaml:"panel_min"`
	PanelMax          int    `yaml:"panel_max"`
	PanelWidth        int    `yaml:"panel_width"`
	DropDir           string `yaml:"drop_dir"`
	SeedSampleCourses bool   `yaml:"seed_sample_courses"`
	// RememberLayout persists theme and panel layout between runs.
	RememberLayout bool `yaml:"remember_layout"`
}

// LogConfig holds log output settings.
type LogConfig struct {
	Path string `yaml:"path"`
}

// DevServerConfig holds settings for the development backend.
type DevServerConfig struct {
	Addr         string `yaml:"addr"`
	DatabasePath string `yaml:"database_path"`
	VideoDir     string `yaml:"video_dir"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "studybuddy.yaml"
	}
	return filepath.Join(dir, "studybuddy", "config.yaml")
}

// Load reads and parses the config file at path, applies defaults and
// expands relative paths against the file's directory. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	configDir := "."
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		configDir = filepath.Dir(path)
	}

	ApplyDefaults(&cfg)

	cfg.UI.DropDir = expandPath(cfg.UI.DropDir, configDir)
	cfg.Log.Path = expandPath(cfg.Log.Path, configDir)
	cfg.DevServer.DatabasePath = expandPath(cfg.DevServer.DatabasePath, configDir)
	cfg.DevServer.VideoDir = expandPath(cfg.DevServer.VideoDir, configDir)
	return &cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Load("")
	}
	return Load(path)
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.Chat.Mode {
	case ChatMock, ChatRemote:
	default:
		return fmt.Errorf("chat.mode must be %q or %q, got %q", ChatMock, ChatRemote, c.Chat.Mode)
	}
	if c.UI.PanelMin > c.UI.PanelMax {
		return fmt.Errorf("ui.panel_min (%d) exceeds ui.panel_max (%d)", c.UI.PanelMin, c.UI.PanelMax)
	}
	if c.Upload.Concurrency < 1 {
		return fmt.Errorf("upload.concurrency must be at least 1")
	}
	return nil
}

// expandPath converts a path to absolute. "~/" is the home directory; other
// relative paths are relative to configDir.
func expandPath(path, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
		return path
	}
	if abs, err := filepath.Abs(filepath.Join(configDir, path)); err == nil {
		return abs
	}
	return path
}
