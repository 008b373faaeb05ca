package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Prefs represents persisted UI preferences.
type Prefs struct {
	Dark           bool
	DarkSet        bool
	PanelWidth     int
	PanelSet       bool
	LeftCollapsed  bool
	RightCollapsed bool
	LayoutSet      bool
}

// file is the on-disk form; nil means unset.
type file struct {
	Dark           *bool `yaml:"dark,omitempty"`
	PanelWidth     *int  `yaml:"panel_width,omitempty"`
	LeftCollapsed  *bool `yaml:"left_collapsed,omitempty"`
	RightCollapsed *bool `yaml:"right_collapsed,omitempty"`
}

// DefaultPath returns the per-user preferences file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".studybuddy-prefs.yaml"
	}
	return filepath.Join(dir, "studybuddy", "prefs.yaml")
}

// Load reads preferences from path. A missing or unreadable file yields
// zero Prefs.
func Load(path string) Prefs {
	var p Prefs
	f, err := read(path)
	if err != nil {
		return p
	}
	if f.Dark != nil {
		p.DarkSet = true
		p.Dark = *f.Dark
	}
	if f.PanelWidth != nil && *f.PanelWidth > 0 {
		p.PanelSet = true
		p.PanelWidth = *f.PanelWidth
	}
	if f.LeftCollapsed != nil || f.RightCollapsed != nil {
		p.LayoutSet = true
		p.LeftCollapsed = f.LeftCollapsed != nil && *f.LeftCollapsed
		p.RightCollapsed = f.RightCollapsed != nil && *f.RightCollapsed
	}
	return p
}

// SaveDark persists the theme.
func SaveDark(path string, v bool) error {
	return update(path, func(f *file) { f.Dark = &v })
}

// SavePanelWidth persists the right panel width.
func SavePanelWidth(path string, w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid panel width: %d", w)
	}
	return update(path, func(f *file) { f.PanelWidth = &w })
}

// SaveCollapsed persists which side panels are collapsed.
func SaveCollapsed(path string, left, right bool) error {
	return update(path, func(f *file) {
		f.LeftCollapsed = &left
		f.RightCollapsed = &right
	})
}

func read(path string) (file, error) {
	var f file
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return file{}, err
	}
	return f, nil
}

func update(path string, mutate func(*file)) error {
	f, err := read(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		// A corrupt file is replaced rather than blocking every save.
		f = file{}
	}
	mutate(&f)
	b, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
