package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// indexHeader is the header cell used for the optional leading index column.
// An empty header matches the row-oriented format expected by generated
// scripts, which treat the index column as positional.
const indexHeader = ""

// WriteCSV serializes the table: one header row, then one record per row.
// When saveIndex is true a leading index column with the 0-based row number
// is included.
func (t *Table) WriteCSV(w io.Writer, saveIndex bool) error {
	cw := csv.NewWriter(w)

	header := t.columns
	if saveIndex {
		header = append([]string{indexHeader}, t.columns...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.rows {
		record := row
		if saveIndex {
			record = append([]string{strconv.Itoa(i)}, row...)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile serializes the table to path, creating or truncating the file.
func WriteFile(path string, t *Table, saveIndex bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := t.WriteCSV(f, saveIndex); err != nil {
		_ = f.Close()
		return fmt.Errorf("serialize %q: %w", path, err)
	}
	return f.Close()
}

// ReadCSV loads a table from a CSV file written by WriteCSV. Every column,
// including a persisted index column, is loaded as-is.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %q: missing header row", path)
	}

	t := New(records[0]...)
	for i, record := range records[1:] {
		cells := make([]any, len(record))
		for j, c := range record {
			cells[j] = c
		}
		if err := t.Append(cells...); err != nil {
			return nil, fmt.Errorf("parse %q row %d: %w", path, i, err)
		}
	}
	return t, nil
}

// ReadFrames loads every table matching the glob pattern, in strictly
// sorted path order. Filesystem ordering never affects the result.
func ReadFrames(pattern string) ([]*Table, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no data files match %q", pattern)
	}
	sort.Strings(matches)

	frames := make([]*Table, 0, len(matches))
	for _, m := range matches {
		t, err := ReadCSV(m)
		if err != nil {
			return nil, err
		}
		frames = append(frames, t)
	}
	return frames, nil
}
