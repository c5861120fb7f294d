// Package source provides the one sanctioned ingestion path for
// cmd/bosmbench: an IntegerColumnSource abstraction with a CSV-backed
// implementation. The codec core never depends on this package; it is
// consumed only by the benchmark CLI.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// IntegerColumnSource materializes a named integer column into memory.
// The codec never assumes a specific backing store; CSV, Parquet, or
// synthetic generators all satisfy this by producing a []int32 once.
type IntegerColumnSource interface {
	Column(ctx context.Context, name string) ([]int32, error)
}

// CSVColumnSource reads a single named column out of a CSV file with a
// header row. Values are parsed as base-10 signed integers; a value
// outside the int32 range or not parseable as an integer is an error.
type CSVColumnSource struct {
	Path string
}

// NewCSVColumnSource returns a CSVColumnSource reading from path.
func NewCSVColumnSource(path string) *CSVColumnSource {
	return &CSVColumnSource{Path: path}
}

// Column reads the CSV file at s.Path and returns every row's value for
// the column named name, in file order.
func (s *CSVColumnSource) Column(ctx context.Context, name string) ([]int32, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", s.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("source: read header from %s: %w", s.Path, err)
	}

	col := -1
	for i, h := range header {
		if h == name {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("source: column %q not found in %s", name, s.Path)
	}

	var out []int32
	for row := 0; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: read row %d from %s: %w", row, s.Path, err)
		}
		if col >= len(record) {
			return nil, fmt.Errorf("source: row %d has no column %d", row, col)
		}

		v, err := strconv.ParseInt(record[col], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("source: row %d column %q: %w", row, name, err)
		}

		out = append(out, int32(v))
	}

	return out, nil
}
