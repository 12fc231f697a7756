package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var (
	// ErrIncomplete marks bundles missing required files.
	ErrIncomplete = errors.New("incomplete bundle")

	// ErrModified marks bundles whose content no longer matches the
	// manifest.
	ErrModified = errors.New("bundle modified")
)

// VerifyError carries the per-file findings of a failed verification.
type VerifyError struct {
	Kind  error
	Files []string
}

func (e *VerifyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Kind.Error(), e.Files)
}

func (e *VerifyError) Unwrap() error { return e.Kind }

// DataFiles returns the bundle's persisted data files, sorted: data.csv
// if present, else all data_*.csv frames.
func DataFiles(l Layout) ([]string, error) {
	if _, err := os.Stat(l.DataFile()); err == nil {
		return []string{l.DataFile()}, nil
	}
	frames, err := filepath.Glob(l.FrameGlob())
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", l.FrameGlob(), err)
	}
	sort.Strings(frames)
	return frames, nil
}

// VerifyComplete checks that the bundle holds at least one data file, the
// generated script, and the rendered artifact for the given format.
func VerifyComplete(l Layout, format string) error {
	var missing []string

	data, err := DataFiles(l)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		missing = append(missing, "data.csv")
	}
	for _, required := range []string{l.ScriptFile(), l.ArtifactFile(format)} {
		if _, err := os.Stat(required); err != nil {
			missing = append(missing, filepath.Base(required))
		}
	}

	if len(missing) > 0 {
		return &VerifyError{Kind: ErrIncomplete, Files: missing}
	}
	return nil
}

// VerifyManifest re-hashes every file named by the bundle's manifest and
// reports mismatches and missing files.
func VerifyManifest(l Layout) error {
	m, err := LoadManifest(l.ManifestFile())
	if err != nil {
		return err
	}

	var bad []string
	for _, fh := range m.Files {
		sum, err := hashFile(filepath.Join(l.Dir(), fh.Path))
		if err != nil {
			bad = append(bad, fh.Path)
			continue
		}
		if sum != fh.SHA256 {
			bad = append(bad, fh.Path)
		}
	}

	if len(bad) > 0 {
		sort.Strings(bad)
		return &VerifyError{Kind: ErrModified, Files: bad}
	}
	return nil
}
