package config

import (
	"os"
	"path/filepath"
	"time"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8000/api"
	}
	if cfg.API.VideoURL == "" {
		cfg.API.VideoURL = "http://localhost:8000"
	}
	if cfg.API.BackendURL == "" {
		cfg.API.BackendURL = "http://localhost:8000"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 2 * time.Minute
	}
	if cfg.Chat.Mode == "" {
		cfg.Chat.Mode = ChatMock
	}
	if cfg.Chat.Timeout == 0 {
		cfg.Chat.Timeout = 90 * time.Second
	}
	if cfg.Upload.Concurrency == 0 {
		cfg.Upload.Concurrency = 1
	}
	if cfg.UI.PanelMin == 0 {
		cfg.UI.PanelMin = 32
	}
	if cfg.UI.PanelMax == 0 {
		cfg.UI.PanelMax = 96
	}
	if cfg.UI.PanelWidth == 0 {
		cfg.UI.PanelWidth = 48
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(stateDir(), "studybuddy.log")
	}
	if cfg.DevServer.Addr == "" {
		cfg.DevServer.Addr = "localhost:8000"
	}
	if cfg.DevServer.DatabasePath == "" {
		cfg.DevServer.DatabasePath = filepath.Join(stateDir(), "devserver.db")
	}
}

func stateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "studybuddy")
	}
	return filepath.Join(os.TempDir(), "studybuddy")
}
