package source

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reprofig/internal/analysis"
)

func loadUnit(t *testing.T, src string) *analysis.Unit {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fig.go"), []byte(src), 0o644))
	u, err := analysis.NewLoader().Load(dir)
	require.NoError(t, err)
	return u
}

func symbol(t *testing.T, u *analysis.Unit, name string) *analysis.Symbol {
	t.Helper()
	sym, ok := u.Lookup(name)
	require.True(t, ok, "symbol %q not found", name)
	return sym
}

func newBuilder() *Builder {
	return NewBuilder(analysis.NewClassifier())
}

func TestBuilder_HelperFragmentsPrecedeTarget(t *testing.T) {
	u := loadUnit(t, `package fig

func helper(x float64) float64 {
	return x * 2
}

func target(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += helper(x)
	}
	return t
}
`)

	frag, err := newBuilder().Render(symbol(t, u, "target"))
	require.NoError(t, err)

	helperAt := strings.Index(frag, "func helper(")
	targetAt := strings.Index(frag, "func target(")
	require.GreaterOrEqual(t, helperAt, 0)
	require.GreaterOrEqual(t, targetAt, 0)
	assert.Less(t, helperAt, targetAt, "dependencies must appear above their user")
}

func TestBuilder_PrimitiveConstantsEmbeddedAsLiterals(t *testing.T) {
	u := loadUnit(t, `package fig

const scale = 2.5

const caption = "energy"

func target(x float64) string {
	_ = x * scale
	return caption
}
`)

	frag, err := newBuilder().Render(symbol(t, u, "target"))
	require.NoError(t, err)

	assert.Contains(t, frag, "const scale = 2.5")
	assert.Contains(t, frag, `const caption = "energy"`)
}

func TestBuilder_SharedHelperRenderedOnce(t *testing.T) {
	u := loadUnit(t, `package fig

func helper(x float64) float64 {
	return x + 1
}

func first(x float64) float64 {
	return helper(x)
}

func second(x float64) float64 {
	return helper(x) * 2
}
`)

	b := newBuilder()
	frag1, err := b.Render(symbol(t, u, "first"))
	require.NoError(t, err)
	frag2, err := b.Render(symbol(t, u, "second"))
	require.NoError(t, err)

	combined := frag1 + "\n" + frag2
	assert.Equal(t, 1, strings.Count(combined, "func helper("),
		"a fragment appears at most once per script")
}

func TestBuilder_SelfRecursionRendersOnce(t *testing.T) {
	u := loadUnit(t, `package fig

func countdown(n int) int {
	if n <= 0 {
		return 0
	}
	return countdown(n - 1)
}
`)

	frag, err := newBuilder().Render(symbol(t, u, "countdown"))
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(frag, "func countdown("))
}

const typeAndHelperSrc = `package fig

type series struct {
	values []float64
}

func (s series) total() float64 {
	t := 0.0
	for _, v := range s.values {
		t += v
	}
	return t
}

func sum(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}

func target(s series, xs []float64) float64 {
	return s.total() + sum(xs)
}
`

func TestBuilder_FirstTypeDependencyEndsThePass(t *testing.T) {
	u := loadUnit(t, typeAndHelperSrc)

	frag, err := newBuilder().Render(symbol(t, u, "target"))
	require.NoError(t, err)

	assert.Contains(t, frag, "type series struct")
	assert.Contains(t, frag, "func (s series) total()")
	assert.NotContains(t, frag, "func sum(",
		"bindings after the first type dependency are dropped")
	assert.Contains(t, frag, "func target(")
}

func TestBuilder_RenderAllTypeDepsKeepsLaterBindings(t *testing.T) {
	u := loadUnit(t, typeAndHelperSrc)

	b := newBuilder()
	b.RenderAllTypeDeps(true)
	frag, err := b.Render(symbol(t, u, "target"))
	require.NoError(t, err)

	assert.Contains(t, frag, "type series struct")
	assert.Contains(t, frag, "func sum(")
}

func TestBuilder_TypeHoistsMethodDependencies(t *testing.T) {
	u := loadUnit(t, `package fig

const scale = 3.0

type series struct {
	values []float64
}

func (s series) scaledTotal() float64 {
	t := 0.0
	for _, v := range s.values {
		t += v * scale
	}
	return t
}

func target(s series) float64 {
	return s.scaledTotal()
}
`)

	frag, err := newBuilder().Render(symbol(t, u, "target"))
	require.NoError(t, err)

	constAt := strings.Index(frag, "const scale = 3.0")
	typeAt := strings.Index(frag, "type series struct")
	require.GreaterOrEqual(t, constAt, 0)
	require.GreaterOrEqual(t, typeAt, 0)
	assert.Less(t, constAt, typeAt, "method dependencies hoist above the type")
	assert.Contains(t, frag, "func (s series) scaledTotal()")
}

func TestBuilder_FragmentsParseBackAsValidGo(t *testing.T) {
	u := loadUnit(t, typeAndHelperSrc)

	b := newBuilder()
	b.RenderAllTypeDeps(true)
	frag, err := b.Render(symbol(t, u, "target"))
	require.NoError(t, err)

	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "frag.go", "package main\n\n"+frag, 0)
	assert.NoError(t, err, "emitted fragments must round-trip through the parser")
}

func TestBuilder_RejectsNonFunctionSymbols(t *testing.T) {
	u := loadUnit(t, `package fig

var data = []int{1, 2}
`)

	_, err := newBuilder().Render(symbol(t, u, "data"))
	assert.Error(t, err)
}
