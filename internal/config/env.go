package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from the environment. The VITE_* names are accepted
// so an existing web client .env can be reused.
func ApplyEnv(cfg *Config) error {
	if v := firstEnv("STUDYBUDDY_API_URL", "VITE_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := firstEnv("STUDYBUDDY_VIDEO_API_URL", "VITE_VIDEO_API_URL"); v != "" {
		cfg.API.VideoURL = v
	}
	if v := firstEnv("STUDYBUDDY_BACKEND_API_URL", "VITE_BACKEND_API_URL"); v != "" {
		cfg.API.BackendURL = v
	}
	if v := firstEnv("STUDYBUDDY_CHAT_MODE"); v != "" {
		cfg.Chat.Mode = strings.ToLower(v)
	}
	if v := firstEnv("STUDYBUDDY_DROP_DIR"); v != "" {
		cfg.UI.DropDir = v
	}
	if v := firstEnv("STUDYBUDDY_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STUDYBUDDY_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	if v := firstEnv("STUDYBUDDY_UPLOAD_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STUDYBUDDY_UPLOAD_CONCURRENCY: %w", err)
		}
		cfg.Upload.Concurrency = n
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
