package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1.5, cfg.FontScale)
	assert.True(t, cfg.UseTimesFont)
	assert.Empty(t, cfg.LaTeXPackages)
}

func TestPreambleString(t *testing.T) {
	assert.Equal(t, "", PreambleString(nil))
	assert.Equal(t, `\usepackage{times}`, PreambleString([]string{"times"}))
	assert.Equal(t,
		`\usepackage{amsmath} \usepackage{times}`,
		PreambleString([]string{"amsmath", "times"}))
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`font_scale: 2.0
use_times_font: false
latex_packages:
  - amsmath
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.FontScale)
	assert.False(t, cfg.UseTimesFont)
	assert.Equal(t, []string{"amsmath"}, cfg.LaTeXPackages)
}

func TestLoadConfig_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("font_scale: 2.0\nfont_sclae: 3.0\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
