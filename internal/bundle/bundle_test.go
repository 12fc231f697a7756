package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLayout(t *testing.T) Layout {
	t.Helper()
	l := Layout{Root: t.TempDir(), Name: "energy"}
	require.NoError(t, os.MkdirAll(l.Dir(), 0o755))
	return l
}

func writeBundleFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func completeBundle(t *testing.T) Layout {
	t.Helper()
	l := newLayout(t)
	writeBundleFile(t, l.DataFile(), "x,y\n1,2\n")
	writeBundleFile(t, l.ScriptFile(), "package main\n")
	writeBundleFile(t, l.ArtifactFile("pdf"), "%PDF")
	return l
}

func TestLayout_Paths(t *testing.T) {
	l := Layout{Root: "figures", Name: "energy"}

	assert.Equal(t, filepath.Join("figures", "energy"), l.Dir())
	assert.Equal(t, filepath.Join("figures", "energy", "data.csv"), l.DataFile())
	assert.Equal(t, filepath.Join("figures", "energy", "data_3.csv"), l.FrameFile(3))
	assert.Equal(t, filepath.Join("figures", "energy", "code.go"), l.ScriptFile())
	assert.Equal(t, filepath.Join("figures", "energy", "energy.pdf"), l.ArtifactFile("pdf"))
	assert.Equal(t, filepath.Join("figures", "energy", "manifest.json"), l.ManifestFile())
}

func TestWriteFileAtomic_WritesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestDataFiles_PrefersSingleTableFile(t *testing.T) {
	l := newLayout(t)
	writeBundleFile(t, l.DataFile(), "x\n1\n")

	files, err := DataFiles(l)
	require.NoError(t, err)
	assert.Equal(t, []string{l.DataFile()}, files)
}

func TestDataFiles_SortsFrameFiles(t *testing.T) {
	l := newLayout(t)
	writeBundleFile(t, l.FrameFile(1), "x\n1\n")
	writeBundleFile(t, l.FrameFile(0), "x\n0\n")

	files, err := DataFiles(l)
	require.NoError(t, err)
	assert.Equal(t, []string{l.FrameFile(0), l.FrameFile(1)}, files)
}

func TestVerifyComplete_PassesOnFullBundle(t *testing.T) {
	l := completeBundle(t)

	assert.NoError(t, VerifyComplete(l, "pdf"))
}

func TestVerifyComplete_ReportsEveryMissingFile(t *testing.T) {
	l := newLayout(t)
	writeBundleFile(t, l.DataFile(), "x\n1\n")

	err := VerifyComplete(l, "pdf")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIncomplete)

	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"code.go", "energy.pdf"}, verr.Files)
}

func TestManifest_RoundTrip(t *testing.T) {
	l := completeBundle(t)

	m, err := BuildManifest(l, []string{"data.csv", "code.go", "energy.pdf"})
	require.NoError(t, err)
	require.NoError(t, m.Write(l.ManifestFile()))

	loaded, err := LoadManifest(l.ManifestFile())
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	// Entries are sorted by path regardless of input order.
	var paths []string
	for _, fh := range loaded.Files {
		paths = append(paths, fh.Path)
	}
	assert.Equal(t, []string{"code.go", "data.csv", "energy.pdf"}, paths)
}

func TestVerifyManifest_DetectsModification(t *testing.T) {
	l := completeBundle(t)
	m, err := BuildManifest(l, []string{"data.csv", "code.go", "energy.pdf"})
	require.NoError(t, err)
	require.NoError(t, m.Write(l.ManifestFile()))

	require.NoError(t, VerifyManifest(l))

	writeBundleFile(t, l.DataFile(), "x,y\n9,9\n")
	err = VerifyManifest(l)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrModified)

	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"data.csv"}, verr.Files)
}

func TestVerifyManifest_DetectsDeletion(t *testing.T) {
	l := completeBundle(t)
	m, err := BuildManifest(l, []string{"data.csv", "code.go", "energy.pdf"})
	require.NoError(t, err)
	require.NoError(t, m.Write(l.ManifestFile()))

	require.NoError(t, os.Remove(l.ArtifactFile("pdf")))

	err = VerifyManifest(l)
	assert.ErrorIs(t, err, ErrModified)
}

func TestLoadManifest_RejectsUnknownFields(t *testing.T) {
	l := newLayout(t)
	writeBundleFile(t, l.ManifestFile(), `{"figure":"energy","files":[],"extra":true}`)

	_, err := LoadManifest(l.ManifestFile())
	assert.Error(t, err)
}
