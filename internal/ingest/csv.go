// Package ingest turns uploaded draw history into validated records.
//
// The expected input is a CSV file with a header row naming the columns
// date, first, second and third (any order, extra columns ignored). Every
// number must fit the 4-digit format; the first bad row aborts the import so
// the store never sees a partial history.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rewired-gh/draworacle/internal/models"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidRecord is matched by every *ValidationError.
	ErrInvalidRecord = errors.New("invalid draw record")
)

// Required column names, in DrawRecord field order.
var columns = []string{"date", "first", "second", "third"}

// ValidationError describes a rejected CSV cell
type ValidationError struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("line %d, column %s: %q %s", e.Line, e.Column, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidRecord) true for validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// ParseCSV reads draw records from r
func ParseCSV(r io.Reader) ([]models.DrawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []models.DrawRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if isBlank(row) {
			continue
		}

		record, err := parseRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// ParseFile reads draw records from the CSV file at path
func ParseFile(path string) ([]models.DrawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func parseRow(row []string, index map[string]int, line int) (models.DrawRecord, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	record := models.DrawRecord{Date: cell("date")}
	if record.Date == "" {
		return record, &ValidationError{Line: line, Column: "date", Reason: "must not be empty"}
	}

	targets := []*models.DrawNumber{&record.First, &record.Second, &record.Third}
	for i, col := range columns[1:] {
		raw := cell(col)
		n, err := parseNumber(raw)
		if err != nil {
			return record, &ValidationError{Line: line, Column: col, Value: raw, Reason: err.Error()}
		}
		*targets[i] = n
	}

	return record, nil
}

// parseNumber accepts plain integers and the "1234.0" form spreadsheet exports produce.
func parseNumber(raw string) (models.DrawNumber, error) {
	if raw == "" {
		return 0, errors.New("must not be empty")
	}
	raw = strings.TrimSuffix(raw, ".0")

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("is not an integer")
	}

	n := models.DrawNumber(v)
	if !n.Valid() {
		return 0, fmt.Errorf("must be between 0 and %d", models.MaxDrawNumber)
	}
	return n, nil
}

func isBlank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
