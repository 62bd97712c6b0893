// Package loader reads reference tables from JSON and CSV files.
//
// JSON files hold an array of objects. Arrays of strings become []string
// cells and integral numbers become int64. CSV and TSV files carry a header
// row; empty cells load as nulls.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/fieldmatch/table"
)

// maxParallelLoads bounds concurrent file reads in LoadAll.
const maxParallelLoads = 4

// ErrUnsupportedFormat is returned for file extensions Load cannot read.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Load reads the table at path, choosing the decoder by extension.
func Load(path string) (*table.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	var f *table.Frame
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		f, err = ReadJSON(bytes.NewReader(data))
	case ".csv":
		f, err = ReadCSV(bytes.NewReader(data), ',')
	case ".tsv":
		f, err = ReadCSV(bytes.NewReader(data), '\t')
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadAll loads paths concurrently. Frames are returned in path order; the
// first failure cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string) ([]*table.Frame, error) {
	frames := make([]*table.Frame, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Load(path)
			if err != nil {
				return err
			}
			frames[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// Name returns the dataset name for a table path: its base name without
// the extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadJSON decodes an array of objects. Columns are the union of all keys,
// sorted.
func ReadJSON(r io.Reader) (*table.Frame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	records := make([]table.Record, len(raw))
	for i, obj := range raw {
		rec := make(table.Record, len(obj))
		for k, v := range obj {
			rec[k] = jsonCell(v)
		}
		records[i] = rec
	}
	return table.FromRecords(records), nil
}

func jsonCell(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if x, err := t.Float64(); err == nil {
			return x
		}
		return t.String()
	case []any:
		strs := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return t
			}
			strs = append(strs, s)
		}
		return strs
	default:
		return v
	}
}

// ReadCSV decodes delimited text whose first row names the columns.
func ReadCSV(r io.Reader, comma rune) (*table.Frame, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	records := make([]table.Record, len(rows))
	for i, row := range rows {
		rec := make(table.Record, len(header))
		for j, name := range header {
			if row[j] == "" {
				rec[name] = nil
				continue
			}
			rec[name] = row[j]
		}
		records[i] = rec
	}
	return table.New(header, records)
}
