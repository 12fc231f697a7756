package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		FigureName: "test_fig",
		OutputDir:  "figures/test_fig",
		Backend:    "pdf",
		Format:     "pdf",
		DPI:        1000,
		TargetName: "createFigure",
		Imports:    []string{`"fmt"`, `"os"`, `"reprofig/render"`, `"reprofig/table"`},
		TargetFragment: `func createFigure(data *table.Table) *render.Figure {
	return nil
}`,
	}
}

func TestAssemble_SectionOrder(t *testing.T) {
	text := Assemble(testConfig())

	sections := []string{
		"// Code generated by reprofig",
		"package main",
		"import (",
		"func init() {",
		`render.SetBackend("pdf")`,
		"func createFigure(",
		"func reproduceFigure() error {",
		"func main() {",
	}
	last := -1
	for _, s := range sections {
		at := strings.Index(text, s)
		require.GreaterOrEqual(t, at, 0, "missing section %q", s)
		assert.Greater(t, at, last, "section %q out of order", s)
		last = at
	}
}

func TestAssemble_SingleTableEntryPoint(t *testing.T) {
	text := Assemble(testConfig())

	assert.Contains(t, text, `table.ReadCSV("figures/test_fig/data.csv")`)
	assert.Contains(t, text, "fig := createFigure(data)")
	assert.Contains(t, text, `"figures/test_fig/test_fig.pdf"`)
	assert.Contains(t, text, "render.SaveOptions{Format: \"pdf\", DPI: 1000}")
}

func TestAssemble_FramesEntryPointUsesSortedGlob(t *testing.T) {
	cfg := testConfig()
	cfg.Frames = true

	text := Assemble(cfg)

	assert.Contains(t, text, `table.ReadFrames("figures/test_fig/data_*.csv")`)
	assert.NotContains(t, text, "ReadCSV")
}

func TestAssemble_AdditionalFragmentsPrecedeTarget(t *testing.T) {
	cfg := testConfig()
	cfg.AdditionalFragments = []string{"func helperOne() {}", "func helperTwo() {}"}

	text := Assemble(cfg)

	one := strings.Index(text, "func helperOne()")
	two := strings.Index(text, "func helperTwo()")
	target := strings.Index(text, "func createFigure(")
	require.GreaterOrEqual(t, one, 0)
	assert.Less(t, one, two, "caller order is preserved")
	assert.Less(t, two, target)
}

func TestAssemble_ImportLinesKeptVerbatim(t *testing.T) {
	cfg := testConfig()
	cfg.Imports = []string{`"fmt"`, `st "sort"`, `. "strings"`}

	text := Assemble(cfg)

	assert.Contains(t, text, "\t\"fmt\"\n")
	assert.Contains(t, text, "\tst \"sort\"\n")
	assert.Contains(t, text, "\t. \"strings\"\n")
}

func TestAssemble_FooterExitsNonZeroOnFailure(t *testing.T) {
	text := Assemble(testConfig())

	assert.Contains(t, text, "os.Exit(1)")
	assert.True(t, strings.HasSuffix(text, "}\n"))
}

func TestAssemble_DeterministicOutput(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, Assemble(cfg), Assemble(cfg))
}
