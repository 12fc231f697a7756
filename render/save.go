package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// SaveOptions control how a figure is written to disk.
type SaveOptions struct {
	// Format is the output format ("pdf", "png", "svg", "eps", "tex",
	// "jpg", "tif"). Empty means: the path's extension, then the
	// package backend.
	Format string

	// DPI is the raster resolution. Only raster formats honor it;
	// zero means DefaultDPI.
	DPI int
}

// Save writes the figure to path. Any drawing error recorded on the figure
// is returned before anything touches the filesystem.
func (f *Figure) Save(path string, opts SaveOptions) error {
	if f.err != nil {
		return fmt.Errorf("figure has a drawing error: %w", f.err)
	}

	format := opts.Format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	if format == "" {
		format = Backend()
	}

	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		return f.saveRaster(path, format, opts.DPI)
	case "tex":
		return f.saveTeX(path)
	default:
		// Vector formats: gonum/plot picks the writer from the
		// path extension.
		if err := f.plot.Save(f.width, f.height, path); err != nil {
			return fmt.Errorf("save %q: %w", path, err)
		}
		return nil
	}
}

func (f *Figure) saveRaster(path, format string, dpi int) error {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	c := vgimg.NewWith(
		vgimg.UseWH(f.width, f.height),
		vgimg.UseDPI(dpi),
	)
	f.plot.Draw(draw.New(c))

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}

	switch format {
	case "png":
		_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	case "jpg", "jpeg":
		_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(w)
	case "tif", "tiff":
		_, err = vgimg.TiffCanvas{Canvas: c}.WriteTo(w)
	}
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("save %q: %w", path, err)
	}
	return w.Close()
}

// saveTeX writes the tex artifact, annotated with the configured preamble
// so the fragment documents the packages it needs for inclusion.
func (f *Figure) saveTeX(path string) error {
	if err := f.plot.Save(f.width, f.height, path); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	p := currentPreamble()
	if p == "" {
		return nil
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("annotate %q: %w", path, err)
	}
	annotated := append([]byte("% preamble: "+p+"\n"), body...)
	if err := os.WriteFile(path, annotated, 0644); err != nil {
		return fmt.Errorf("annotate %q: %w", path, err)
	}
	return nil
}
