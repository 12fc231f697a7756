package script

import (
	"regexp"
	"strings"
)

// Normalizer canonicalizes script text before it is written.
type Normalizer interface {
	Normalize(text string) string
}

// ScriptNormalizer is the default normalizer: Unix line endings, no
// trailing whitespace, at most one blank line between blocks, exactly one
// trailing newline. Fragments assembled from independently printed
// declarations would otherwise carry uneven spacing.
type ScriptNormalizer struct{}

// NewScriptNormalizer creates the default normalizer.
func NewScriptNormalizer() *ScriptNormalizer {
	return &ScriptNormalizer{}
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Normalize canonicalizes text.
func (n *ScriptNormalizer) Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")

	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimRight(text, "\n") + "\n"
}

// RawNormalizer preserves text exactly.
type RawNormalizer struct{}

// Normalize returns text unchanged.
func (RawNormalizer) Normalize(text string) string { return text }
