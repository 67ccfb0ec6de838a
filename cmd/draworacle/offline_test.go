package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rewired-gh/draworacle/internal/models"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draws.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunStats(t *testing.T) {
	path := writeCSV(t, "date,first,second,third\n2024-01-01,1234,5678,1111\n")

	var out bytes.Buffer
	if err := runStats(&out, path); err != nil {
		t.Fatalf("runStats failed: %v", err)
	}

	var body statsOutput
	if err := json.Unmarshal(out.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if body.Stats.Total != 3 {
		t.Errorf("Expected total 3, got %d", body.Stats.Total)
	}
	if len(body.DigitDistribution.Datasets) != 4 {
		t.Errorf("Expected 4 datasets, got %d", len(body.DigitDistribution.Datasets))
	}
}

func TestRunPredict(t *testing.T) {
	path := writeCSV(t, "date,first,second,third\n2024-01-01,1111,2222,3333\n")

	var out bytes.Buffer
	if err := runPredict(&out, path); err != nil {
		t.Fatalf("runPredict failed: %v", err)
	}

	var body predictOutput
	if err := json.Unmarshal(out.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(body.Predictions) != 3 || body.Predictions[0].Number != "3333" {
		t.Errorf("Unexpected predictions: %+v", body.Predictions)
	}
}

func TestRunStats_EmptyHistory(t *testing.T) {
	path := writeCSV(t, "date,first,second,third\n")

	err := runStats(&bytes.Buffer{}, path)
	if !errors.Is(err, models.ErrEmptySeries) {
		t.Errorf("Expected ErrEmptySeries, got %v", err)
	}
}
