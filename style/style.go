// Package style configures the default look of rendered figures: font
// scaling, TeX typesetting when a TeX installation is present, and the
// LaTeX preamble advertised by tex-format artifacts.
package style

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"reprofig/render"
)

// Config describes a plotting style. The zero value means "leave
// everything at the render package defaults".
type Config struct {
	// FontScale multiplies the default title, label, and tick fonts.
	FontScale float64 `yaml:"font_scale"`

	// UseTimesFont adds the times package to the preamble when TeX is
	// available.
	UseTimesFont bool `yaml:"use_times_font"`

	// LaTeXPackages lists extra packages for the preamble.
	LaTeXPackages []string `yaml:"latex_packages"`
}

// DefaultConfig mirrors the conventional publication style: scaled fonts
// and Times when TeX can typeset it.
func DefaultConfig() Config {
	return Config{
		FontScale:    1.5,
		UseTimesFont: true,
	}
}

// TeXAvailable reports whether a TeX installation answers "tex --version".
// Probe failure of any kind means TeX is treated as unavailable; the probe
// never returns an error.
func TeXAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "tex", "--version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

// PreambleString renders the usepackage directives for the given packages.
func PreambleString(packages []string) string {
	parts := make([]string, len(packages))
	for i, p := range packages {
		parts[i] = `\usepackage{` + p + `}`
	}
	return strings.Join(parts, " ")
}

// Apply installs the style as the render package defaults.
func Apply(ctx context.Context, cfg Config) {
	if cfg.FontScale > 0 {
		render.SetFontScale(cfg.FontScale)
	}

	if !TeXAvailable(ctx) {
		return
	}
	packages := append([]string(nil), cfg.LaTeXPackages...)
	if cfg.UseTimesFont {
		packages = append(packages, "times")
	}
	if len(packages) > 0 {
		render.SetLaTeXPreamble(PreambleString(packages))
	}
}
