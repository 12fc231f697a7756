package table

import (
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_FormatsSupportedCellTypes(t *testing.T) {
	tab := New("s", "b", "i", "i64", "f", "stringer")

	err := tab.Append("text", true, 7, int64(-9), 2.5, net.IPv4(127, 0, 0, 1))
	require.NoError(t, err)

	for column, want := range map[string]string{
		"s":        "text",
		"b":        "true",
		"i":        "7",
		"i64":      "-9",
		"f":        "2.5",
		"stringer": "127.0.0.1",
	} {
		got, err := tab.Strings(column)
		require.NoError(t, err, column)
		assert.Equal(t, []string{want}, got, column)
	}
}

func TestAppend_RejectsArityMismatch(t *testing.T) {
	tab := New("x", "y")

	err := tab.Append(1.0)
	assert.Error(t, err)
	assert.Equal(t, 0, tab.Len())
}

func TestAppend_RejectsUnsupportedTypes(t *testing.T) {
	tab := New("x")

	err := tab.Append(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cell type")
}

func TestFloats_ParsesColumn(t *testing.T) {
	tab := New("x", "label")
	require.NoError(t, tab.Append(1.5, "a"))
	require.NoError(t, tab.Append(-2.0, "b"))

	got, err := tab.Floats("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.0}, got)

	_, err = tab.Floats("label")
	assert.Error(t, err)

	_, err = tab.Floats("missing")
	assert.Error(t, err)
}

func TestMustFloats_PanicsOnBadColumn(t *testing.T) {
	tab := New("label")
	require.NoError(t, tab.Append("not a number"))

	assert.Panics(t, func() { tab.MustFloats("label") })
}

func TestColumns_ReturnsACopy(t *testing.T) {
	tab := New("x", "y")

	cols := tab.Columns()
	cols[0] = "mutated"

	assert.Equal(t, []string{"x", "y"}, tab.Columns())
}

func TestWriteCSV_WithAndWithoutIndex(t *testing.T) {
	tab := New("x", "y")
	require.NoError(t, tab.Append(1.0, 2.0))
	require.NoError(t, tab.Append(3.0, 4.0))

	var plain strings.Builder
	require.NoError(t, tab.WriteCSV(&plain, false))
	assert.Equal(t, "x,y\n1,2\n3,4\n", plain.String())

	var indexed strings.Builder
	require.NoError(t, tab.WriteCSV(&indexed, true))
	assert.Equal(t, ",x,y\n0,1,2\n1,3,4\n", indexed.String())
}
