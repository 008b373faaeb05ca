package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: "http://api.test/api"
  timeout: 30s
chat:
  mode: remote
upload:
  concurrency: 3
ui:
  drop_dir: "./drop"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://api.test/api" || cfg.API.Timeout != 30*time.Second {
		t.Errorf("unexpected api config: %+v", cfg.API)
	}
	if cfg.API.VideoURL != "http://localhost:8000" {
		t.Errorf("video url default = %q", cfg.API.VideoURL)
	}
	if cfg.Chat.Mode != ChatRemote || cfg.Upload.Concurrency != 3 {
		t.Errorf("chat=%+v upload=%+v", cfg.Chat, cfg.Upload)
	}
	if cfg.UI.DropDir != filepath.Join(dir, "drop") {
		t.Errorf("drop_dir = %q", cfg.UI.DropDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://localhost:8000/api" || cfg.API.BackendURL != "http://localhost:8000" {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Chat.Mode != ChatMock || cfg.Upload.Concurrency != 1 {
		t.Errorf("chat=%+v upload=%+v", cfg.Chat, cfg.Upload)
	}
	if cfg.UI.PanelMin != 32 || cfg.UI.PanelMax != 96 || cfg.UI.PanelWidth != 48 {
		t.Errorf("ui = %+v", cfg.UI)
	}
	if cfg.Debug || cfg.UI.RememberLayout {
		t.Error("debug and remember_layout default to false")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil || cfg == nil {
		t.Fatalf("LoadOptional: %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, _ := Load("")
	cfg.Chat.Timeout = 5 * time.Second
	cfg.UI.Dark = true
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Chat.Timeout != 5*time.Second || !got.UI.Dark {
		t.Fatalf("got %+v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("VITE_API_URL", "http://vite/api")
	t.Setenv("STUDYBUDDY_VIDEO_API_URL", "http://videos")
	t.Setenv("VITE_VIDEO_API_URL", "http://ignored")
	t.Setenv("STUDYBUDDY_UPLOAD_CONCURRENCY", "4")
	t.Setenv("STUDYBUDDY_DEBUG", "true")
	t.Setenv("STUDYBUDDY_CHAT_MODE", "REMOTE")
	cfg, _ := Load("")
	if err := ApplyEnv(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://vite/api" || cfg.API.VideoURL != "http://videos" {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Upload.Concurrency != 4 || !cfg.Debug || cfg.Chat.Mode != ChatRemote {
		t.Errorf("cfg = %+v", cfg)
	}

	t.Setenv("STUDYBUDDY_UPLOAD_CONCURRENCY", "many")
	if err := ApplyEnv(cfg); err == nil {
		t.Fatal("expected error for non-numeric concurrency")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STUDYBUDDY_BACKEND_API_URL=http://from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STUDYBUDDY_BACKEND_API_URL", "")
	os.Unsetenv("STUDYBUDDY_BACKEND_API_URL")
	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	cfg, _ := Load("")
	if err := ApplyEnv(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.API.BackendURL != "http://from-dotenv" {
		t.Fatalf("backend url = %q", cfg.API.BackendURL)
	}
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load("")
	cfg.Chat.Mode = "telepathy"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid chat mode")
	}
	cfg.Chat.Mode = ChatMock
	cfg.UI.PanelMin, cfg.UI.PanelMax = 100, 50
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid panel bounds")
	}
}
