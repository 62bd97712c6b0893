package table

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Error values for consistent error handling by callers.
var (
	ErrInvalidColumn  = errors.New("invalid column")
	ErrColumnNotFound = fmt.Errorf("%w: column not found", ErrInvalidColumn)
)

// Record is a single row, keyed by column name.
type Record map[string]any

// Frame is an immutable, ordered collection of records.
type Frame struct {
	columns []string
	lookup  map[string]int
	rows    []Record
}

// New creates a Frame with the given column order.
// Record keys outside columns are kept but never selected by matching.
func New(columns []string, records []Record) (*Frame, error) {
	lookup := make(map[string]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("%w: empty column name at position %d", ErrInvalidColumn, i)
		}
		if _, dup := lookup[c]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidColumn, c)
		}
		lookup[c] = i
	}

	rows := make([]Record, len(records))
	for i, r := range records {
		rows[i] = cloneRecord(r)
	}

	return &Frame{
		columns: slices.Clone(columns),
		lookup:  lookup,
		rows:    rows,
	}, nil
}

// FromRecords creates a Frame whose columns are the union of all record keys,
// in sorted order.
func FromRecords(records []Record) *Frame {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			if strings.TrimSpace(k) != "" {
				seen[k] = struct{}{}
			}
		}
	}
	columns := slices.Sorted(maps.Keys(seen))

	f, _ := New(columns, records)
	return f
}

// Empty returns a Frame with the given columns and no rows.
func Empty(columns ...string) *Frame {
	f, err := New(columns, nil)
	if err != nil {
		return &Frame{lookup: map[string]int{}}
	}
	return f
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.columns)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.rows)
}

// HasColumn reports whether name is one of the frame's columns.
func (f *Frame) HasColumn(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.lookup[name]
	return ok
}

// Row returns a copy of the i-th record. List cells are copied too.
func (f *Frame) Row(i int) Record {
	return cloneRecord(f.rows[i])
}

// Value returns the cell at row i and the given column, or nil when the
// record has no such key. List cells are returned as stored and must not be
// modified; use Row for a private copy.
func (f *Frame) Value(i int, column string) any {
	return f.rows[i][column]
}

// Column returns the values of a column in row order.
func (f *Frame) Column(name string) ([]any, error) {
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]any, len(f.rows))
	for i, r := range f.rows {
		out[i] = r[name]
	}
	return out, nil
}

// Take returns a new Frame holding the rows at the given positions, in the
// given order, with the same columns.
func (f *Frame) Take(indices []int) *Frame {
	rows := make([]Record, len(indices))
	for i, idx := range indices {
		rows[i] = cloneRecord(f.rows[idx])
	}
	return &Frame{
		columns: slices.Clone(f.columns),
		lookup:  maps.Clone(f.lookup),
		rows:    rows,
	}
}

// Records returns copies of all rows.
func (f *Frame) Records() []Record {
	out := make([]Record, f.Len())
	for i := range out {
		out[i] = f.Row(i)
	}
	return out
}

// cloneRecord copies r and every list or map cell in it, so a Frame never
// shares mutable cells with its callers.
func cloneRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneCell(v)
	}
	return out
}

func cloneCell(v any) any {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneCell(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneCell(e)
		}
		return out
	case Record:
		return cloneRecord(t)
	default:
		return v
	}
}
