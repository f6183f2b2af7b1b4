// Package csvutil reads header-keyed CSV files into typed values.
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ProcessorOptions configures CSV processing behavior.
type ProcessorOptions struct {
	// Required lists header columns that must be present.
	Required []string

	// SkipInvalid controls whether to skip invalid records or return an error.
	SkipInvalid bool
}

// Record is one CSV row keyed by lowercased header name.
type Record struct {
	Line   int
	fields map[string]string
}

// Get returns the trimmed value of column name, or "" when absent.
func (r Record) Get(name string) string {
	return strings.TrimSpace(r.fields[strings.ToLower(name)])
}

// Has reports whether the row carries a non-blank value for name.
func (r Record) Has(name string) bool {
	return r.Get(name) != ""
}

// ProcessCSV reads a CSV file and parses each record into type T.
func ProcessCSV[T any](filename string, parser func(Record) (T, error), opts ProcessorOptions) ([]T, error) {
	csvFile, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = csvFile.Close() }()

	if fi, err := csvFile.Stat(); err != nil || fi.Size() == 0 {
		return nil, fmt.Errorf("CSV file is empty or cannot be read")
	}

	return Process(csvFile, parser, opts)
}

// Process parses CSV content from r. The first row is the header.
func Process[T any](r io.Reader, parser func(Record) (T, error), opts ProcessorOptions) ([]T, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}
	for _, name := range opts.Required {
		if !containsColumn(columns, name) {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var items []T
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			slog.Warn("Error reading record", "line", line, "error", err)
			continue
		}

		record := Record{Line: line, fields: make(map[string]string, len(columns))}
		for i, value := range row {
			if i < len(columns) {
				record.fields[columns[i]] = value
			}
		}

		item, err := parser(record)
		if err != nil {
			if opts.SkipInvalid {
				slog.Warn("Skipping invalid record", "line", line, "error", err)
				continue
			}
			return nil, fmt.Errorf("invalid record on line %d: %w", line, err)
		}

		items = append(items, item)
	}

	return items, nil
}

func containsColumn(columns []string, name string) bool {
	name = strings.ToLower(name)
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
