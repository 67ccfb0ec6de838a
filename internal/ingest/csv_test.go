package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rewired-gh/draworacle/internal/models"
)

func TestParseCSV(t *testing.T) {
	input := "date,first,second,third\n" +
		"2024-01-01,1234,5678,0012\n" +
		"2024-01-02,7,42,9999\n"

	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	expected := []models.DrawRecord{
		{Date: "2024-01-01", First: 1234, Second: 5678, Third: 12},
		{Date: "2024-01-02", First: 7, Second: 42, Third: 9999},
	}
	if len(records) != len(expected) {
		t.Fatalf("Expected %d records, got %d", len(expected), len(records))
	}
	for i := range expected {
		if records[i] != expected[i] {
			t.Errorf("records[%d] = %+v, expected %+v", i, records[i], expected[i])
		}
	}
}

func TestParseCSV_HeaderVariants(t *testing.T) {
	input := "\ufeffThird, Second ,id,FIRST,Date\n" +
		"3,2,row-1,1,2024-01-01\n" +
		"\n" +
		"6.0,5,row-2,4,2024-01-02\n"

	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0] != (models.DrawRecord{Date: "2024-01-01", First: 1, Second: 2, Third: 3}) {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[1].Third != 6 {
		t.Errorf("Expected 6.0 to parse as 6, got %d", records[1].Third)
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("date,first,second,third\n"))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		line    int
		column  string
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "missing third column",
			input:   "date,first,second\n2024-01-01,1,2\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "non numeric value",
			input:   "date,first,second,third\n2024-01-01,1,abc,3\n",
			wantErr: ErrInvalidRecord,
			line:    2,
			column:  "second",
		},
		{
			name:    "value too large",
			input:   "date,first,second,third\n2024-01-01,1,2,3\n2024-01-02,10000,2,3\n",
			wantErr: ErrInvalidRecord,
			line:    3,
			column:  "first",
		},
		{
			name:    "negative value",
			input:   "date,first,second,third\n2024-01-01,1,2,-3\n",
			wantErr: ErrInvalidRecord,
			line:    2,
			column:  "third",
		},
		{
			name:    "missing cell",
			input:   "date,first,second,third\n2024-01-01,1,2\n",
			wantErr: ErrInvalidRecord,
			line:    2,
			column:  "third",
		},
		{
			name:    "empty date",
			input:   "date,first,second,third\n,1,2,3\n",
			wantErr: ErrInvalidRecord,
			line:    2,
			column:  "date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseCSV(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if records != nil {
				t.Errorf("Expected no records on error, got %d", len(records))
			}

			var verr *ValidationError
			if tt.line == 0 {
				return
			}
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if verr.Line != tt.line || verr.Column != tt.column {
				t.Errorf("Error at line %d column %s, expected line %d column %s",
					verr.Line, verr.Column, tt.line, tt.column)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.csv")
	if err := os.WriteFile(path, []byte("date,first,second,third\n2024-01-01,1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}
