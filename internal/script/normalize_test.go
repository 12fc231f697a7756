package script

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptNormalizer_CollapsesBlankRuns(t *testing.T) {
	n := NewScriptNormalizer()

	got := n.Normalize("a\n\n\n\n\nb\n")

	assert.Equal(t, "a\n\nb\n", got)
}

func TestScriptNormalizer_TrimsTrailingSpaceAndCRLF(t *testing.T) {
	n := NewScriptNormalizer()

	got := n.Normalize("line one  \r\nline two\t\r\n")

	assert.Equal(t, "line one\nline two\n", got)
}

func TestScriptNormalizer_EnsuresSingleTrailingNewline(t *testing.T) {
	n := NewScriptNormalizer()

	assert.Equal(t, "x\n", n.Normalize("x"))
	assert.Equal(t, "x\n", n.Normalize("x\n\n\n"))
}

func TestRawNormalizer_PassesThrough(t *testing.T) {
	raw := "a \r\n\n\n b"

	assert.Equal(t, raw, RawNormalizer{}.Normalize(raw))
}

func TestFormatter_MissingBinaryErrors(t *testing.T) {
	f := &Formatter{Bin: "definitely-not-a-real-formatter"}

	err := f.Format(context.Background(), filepath.Join(t.TempDir(), "code.go"))

	assert.Error(t, err)
}
