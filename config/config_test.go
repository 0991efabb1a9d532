package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/pdfannotator/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastFolderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lf := LastFolder{Path: filepath.Join(dir, "last.txt")}

	folder, err := lf.Load()
	require.NoError(t, err)
	assert.Equal(t, "", folder)

	require.NoError(t, lf.Save(dir))

	folder, err = lf.Load()
	require.NoError(t, err)
	assert.Equal(t, dir, folder)
}

func TestLastFolderIgnoresVanishedFolder(t *testing.T) {
	dir := t.TempDir()
	lf := LastFolder{Path: filepath.Join(dir, "last.txt")}

	require.NoError(t, lf.Save(filepath.Join(dir, "gone")))

	folder, err := lf.Load()
	require.NoError(t, err)
	assert.Equal(t, "", folder)
}

func TestLastFolderTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	lf := LastFolder{Path: filepath.Join(dir, "last.txt")}
	require.NoError(t, os.WriteFile(lf.Path, []byte(dir+"\n"), 0644))

	folder, err := lf.Load()
	require.NoError(t, err)
	assert.Equal(t, dir, folder)
}

func TestLastFolderSaveError(t *testing.T) {
	lf := LastFolder{Path: filepath.Join(t.TempDir(), "missing", "last.txt")}
	assert.Error(t, lf.Save("/tmp"))
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, render.FitWidth, s.Zoom())
	assert.Equal(t, annots.Yellow, s.Color())
}

func TestLoadSettingsValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := []byte("default_zoom: 150%\nhighlight_color: not-a-color\nwindow_width: -5\nresize_debounce: 1s\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, render.Zoom{Percent: 150}, s.Zoom())
	assert.Equal(t, annots.Yellow.Hex(), s.HighlightColor)
	assert.Equal(t, float32(1200), s.WindowWidth)
	assert.Equal(t, time.Second, s.ResizeDebounce)
}

func TestLoadSettingsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_zoom: [unclosed"), 0644))

	s, err := LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s := DefaultSettings()
	s.DefaultZoom = "200%"
	s.HighlightColor = "#00ff00"
	require.NoError(t, s.Save(path))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestInitSettingsWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdfannotator", "settings.yaml")

	s, err := InitSettings(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), loaded)
}

func TestInitSettingsKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := []byte("default_zoom: 75%\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := InitSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "75%", s.DefaultZoom)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, after)
}
