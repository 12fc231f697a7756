// Package bundle defines the on-disk reproducibility bundle for one
// figure: its serialized data, the generated reproduction script, the
// rendered artifact, and a content-hash manifest used to verify that a
// bundle is complete and unmodified.
package bundle

import (
	"fmt"
	"path/filepath"
)

// ScriptFileName is the generated reproduction script's file name.
const ScriptFileName = "code.go"

// ManifestFileName is the bundle manifest's file name.
const ManifestFileName = "manifest.json"

// Layout locates the files of one figure's bundle under a root directory.
type Layout struct {
	// Root is the figures root directory.
	Root string

	// Name is the figure name, used as directory and artifact stem.
	Name string
}

// Dir returns the bundle directory.
func (l Layout) Dir() string {
	return filepath.Join(l.Root, l.Name)
}

// DataFile returns the single-table data file path.
func (l Layout) DataFile() string {
	return filepath.Join(l.Dir(), "data.csv")
}

// FrameFile returns the path of the i-th data frame.
func (l Layout) FrameFile(i int) string {
	return filepath.Join(l.Dir(), fmt.Sprintf("data_%d.csv", i))
}

// FrameGlob returns the glob matching all data frames.
func (l Layout) FrameGlob() string {
	return filepath.Join(l.Dir(), "data_*.csv")
}

// ScriptFile returns the generated script path.
func (l Layout) ScriptFile() string {
	return filepath.Join(l.Dir(), ScriptFileName)
}

// ArtifactFile returns the rendered output path for the given format.
func (l Layout) ArtifactFile(format string) string {
	return filepath.Join(l.Dir(), l.Name+"."+format)
}

// ManifestFile returns the manifest path.
func (l Layout) ManifestFile() string {
	return filepath.Join(l.Dir(), ManifestFileName)
}
