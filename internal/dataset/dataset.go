// Package dataset reads exported sales datasets from disk for offline rendering.
//
// Two formats are accepted, matching what the task API collects from:
//   - JSON: an array of objects with the sale fields.
//   - CSV: comma separated with a header row naming the columns.
package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/salespulse/internal/domain/models"
)

// RequiredColumns must be present in a CSV header, in any order.
var RequiredColumns = []string{
	models.FieldDateOfSale,
	models.FieldCompany,
	models.FieldPrice,
}

// ErrUnsupportedFormat is returned for files that are neither .json nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// LoadFile reads a .json or .csv dataset into raw records.
//
// Parameters:
//   - ctx: checked between CSV rows.
//   - path: file to read; the extension selects the format.
//
// Returns:
//   - []models.RawRecord: the records in file order.
//   - error: on I/O errors, malformed files or a CSV header missing a required column.
func LoadFile(ctx context.Context, path string) ([]models.RawRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".csv" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	if ext == ".json" {
		return ReadJSON(f)
	}
	return ReadCSV(ctx, f)
}

// ReadJSON decodes an array of records. Numbers stay json.Number.
func ReadJSON(r io.Reader) ([]models.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var out []models.RawRecord
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode json dataset: %w", err)
	}
	if out == nil {
		out = []models.RawRecord{}
	}
	return out, nil
}

// ReadCSV reads a headed CSV. Cells are kept as trimmed strings; empty cells
// are left out of the record so the normalizer reports them as missing.
// Rows with a different column count than the header fail the whole read.
func ReadCSV(ctx context.Context, r io.Reader) ([]models.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []models.RawRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns, err := validateHeader(header)
	if err != nil {
		return nil, err
	}

	out := []models.RawRecord{}
	line := 1
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(row) != len(columns) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(columns), len(row))
		}

		rec := make(models.RawRecord, len(columns))
		for i, col := range columns {
			if v := strings.TrimSpace(row[i]); v != "" {
				rec[col] = v
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// validateHeader normalizes column names and checks the required ones exist.
func validateHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if name == "" {
			return nil, fmt.Errorf("invalid header: empty column name at col %d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("invalid header: duplicate column %q", name)
		}
		seen[name] = true
		columns[i] = name
	}
	for _, req := range RequiredColumns {
		if !seen[req] {
			return nil, fmt.Errorf("invalid header: missing column %q", req)
		}
	}
	return columns, nil
}
