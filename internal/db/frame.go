package db

import (
	"fmt"
	"time"
)

// Row is one result row in column order. SQL NULL is nil.
type Row []any

type Column struct {
	Name         string
	DatabaseType string
}

// DataFrame is the tabular form of a query result.
type DataFrame struct {
	Columns []Column
	Rows    []Row
}

func (f *DataFrame) Len() int {
	return len(f.Rows)
}

func (f *DataFrame) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the first column named name, or -1.
func (f *DataFrame) Index(name string) int {
	for i, c := range f.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column.
func (f *DataFrame) Column(name string) ([]any, error) {
	idx := f.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	values := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Head returns a frame sharing the first n rows. n <= 0 keeps every row.
func (f *DataFrame) Head(n int) *DataFrame {
	if n <= 0 || n >= len(f.Rows) {
		return f
	}
	return &DataFrame{Columns: f.Columns, Rows: f.Rows[:n]}
}

// Records renders every cell as a display string.
func (f *DataFrame) Records() [][]string {
	records := make([][]string, len(f.Rows))
	for i, row := range f.Rows {
		rec := make([]string, len(row))
		for j, val := range row {
			rec[j] = FormatValue(val)
		}
		records[i] = rec
	}
	return records
}

// Maps returns one column-name keyed map per row.
func (f *DataFrame) Maps() []map[string]any {
	out := make([]map[string]any, len(f.Rows))
	for i, row := range f.Rows {
		m := make(map[string]any, len(f.Columns))
		for j, c := range f.Columns {
			m[c.Name] = row[j]
		}
		out[i] = m
	}
	return out
}

// FormatValue renders a scanned value for display.
func FormatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
