package bundle

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// FileHash pairs a bundle-relative path with its content hash.
type FileHash struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// Manifest records the content identity of a bundle's files, sorted by
// path. Hashing is content-based; file metadata never participates.
type Manifest struct {
	Figure string     `json:"figure"`
	Files  []FileHash `json:"files"`
}

// BuildManifest hashes the named bundle-relative files. Every named file
// must exist; the manifest describes a complete bundle, not a partial one.
func BuildManifest(l Layout, relPaths []string) (*Manifest, error) {
	paths := append([]string(nil), relPaths...)
	sort.Strings(paths)

	m := &Manifest{Figure: l.Name}
	for _, rel := range paths {
		sum, err := hashFile(filepath.Join(l.Dir(), rel))
		if err != nil {
			return nil, fmt.Errorf("hash %q: %w", rel, err)
		}
		m.Files = append(m.Files, FileHash{Path: rel, SHA256: sum})
	}
	return m, nil
}

// Write persists the manifest atomically.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest, rejecting unknown fields so a corrupted
// or foreign file cannot pass for a bundle manifest.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", path, err)
	}
	return &m, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
