package table

import (
	"fmt"
	"strconv"
)

// Table is an ordered, column-named tabular container.
//
// Cells are stored as text; typed access goes through Floats and Strings.
// The zero value is not usable; construct with New.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given column names, in order.
func New(columns ...string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return &Table{
		columns: append([]string(nil), columns...),
		index:   idx,
	}
}

// Append adds one row. The number of cells must match the number of columns.
// Cells may be string, bool, int, int64, float64, or any fmt.Stringer;
// other values are rejected.
func (t *Table) Append(cells ...any) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("append row: got %d cells, want %d", len(cells), len(t.columns))
	}
	row := make([]string, len(cells))
	for i, c := range cells {
		s, err := formatCell(c)
		if err != nil {
			return fmt.Errorf("append row: column %q: %w", t.columns[i], err)
		}
		row[i] = s
	}
	t.rows = append(t.rows, row)
	return nil
}

func formatCell(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("unsupported cell type %T", v)
	}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Strings returns the raw text cells of the named column.
func (t *Table) Strings(column string) ([]string, error) {
	i, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("no column %q", column)
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Floats parses the named column as float64 values.
func (t *Table) Floats(column string) ([]float64, error) {
	raw, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for r, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", column, r, err)
		}
		out[r] = v
	}
	return out, nil
}

// MustFloats is Floats for use inside figure-creation functions, where a
// malformed column is a programming error in the figure itself.
func (t *Table) MustFloats(column string) []float64 {
	v, err := t.Floats(column)
	if err != nil {
		panic(err)
	}
	return v
}
