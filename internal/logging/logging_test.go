package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("debug mode writes debug lines to the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "debug.log")
		logger, err := New(true, path)
		if err != nil {
			t.Fatalf("New(true) error: %v", err)
		}
		logger.Debug("hello debug")
		_ = logger.Sync()
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "hello debug") {
			t.Fatalf("log = %q", data)
		}
	})

	t.Run("production mode drops debug and writes JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prod.log")
		logger, err := New(false, path)
		if err != nil {
			t.Fatalf("New(false) error: %v", err)
		}
		logger.Debug("hidden")
		logger.Info("shown")
		_ = logger.Sync()
		data, _ := os.ReadFile(path)
		s := string(data)
		if strings.Contains(s, "hidden") || !strings.Contains(s, `"msg":"shown"`) {
			t.Fatalf("log = %q", s)
		}
	})
}
