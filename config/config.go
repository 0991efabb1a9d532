// Package config persists the last opened folder and the optional user
// settings of the annotator.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/pdfannotator/render"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	lastFolderFile = ".pdf_annotator_config.txt"
	settingsFile   = "settings.yaml"
)

// DefaultLastFolderPath is the plain text file in the home directory that
// holds the last opened folder.
func DefaultLastFolderPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return lastFolderFile
	}
	return filepath.Join(home, lastFolderFile)
}

func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pdfannotator", settingsFile)
}

// LastFolder is the single persisted string: the folder the user picked
// last.
type LastFolder struct {
	Path string
}

// Load returns the stored folder, or "" when none is stored or it no
// longer exists.
func (l LastFolder) Load() (string, error) {
	data, err := os.ReadFile(l.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "read last folder")
	}

	folder := strings.TrimSpace(string(data))
	if folder == "" {
		return "", nil
	}

	st, err := os.Stat(folder)
	if err != nil || !st.IsDir() {
		return "", nil
	}

	return folder, nil
}

func (l LastFolder) Save(folder string) error {
	if err := os.WriteFile(l.Path, []byte(folder), 0644); err != nil {
		return errors.Wrap(err, "write last folder")
	}
	return nil
}

// Settings are optional preferences read from a YAML file.
type Settings struct {
	DefaultZoom    string        `yaml:"default_zoom"`
	HighlightColor string        `yaml:"highlight_color"`
	WindowWidth    float32       `yaml:"window_width"`
	WindowHeight   float32       `yaml:"window_height"`
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultZoom:    render.FitWidth.String(),
		HighlightColor: annots.Yellow.Hex(),
		WindowWidth:    1200,
		WindowHeight:   800,
		ResizeDebounce: 300 * time.Millisecond,
	}
}

// LoadSettings reads path. A missing file yields the defaults; a file that
// cannot be parsed yields the defaults and the error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, errors.Wrap(err, "read settings")
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), errors.Wrapf(err, "parse %s", path)
	}

	s.Validate()

	return s, nil
}

// InitSettings is LoadSettings that also writes the defaults to path when
// no settings file exists yet, so there is a file to edit. An existing
// file is never rewritten.
func InitSettings(path string) (Settings, error) {
	_, statErr := os.Stat(path)

	s, err := LoadSettings(path)
	if err != nil || !os.IsNotExist(statErr) {
		return s, err
	}

	if err := s.Save(path); err != nil {
		return s, errors.Wrap(err, "write default settings")
	}

	return s, nil
}

// Validate replaces invalid values with their defaults.
func (s *Settings) Validate() {
	defaults := DefaultSettings()

	if _, err := render.ParseZoom(s.DefaultZoom); err != nil {
		s.DefaultZoom = defaults.DefaultZoom
	}

	if _, err := annots.ColorFromHex(s.HighlightColor); err != nil {
		s.HighlightColor = defaults.HighlightColor
	}

	if s.WindowWidth <= 0 {
		s.WindowWidth = defaults.WindowWidth
	}

	if s.WindowHeight <= 0 {
		s.WindowHeight = defaults.WindowHeight
	}

	if s.ResizeDebounce <= 0 {
		s.ResizeDebounce = defaults.ResizeDebounce
	}
}

func (s Settings) Zoom() render.Zoom {
	z, err := render.ParseZoom(s.DefaultZoom)
	if err != nil {
		return render.FitWidth
	}
	return z
}

func (s Settings) Color() annots.Color {
	c, err := annots.ColorFromHex(s.HighlightColor)
	if err != nil {
		return annots.Yellow
	}
	return c
}

func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
