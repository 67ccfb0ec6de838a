package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rewired-gh/draworacle/internal/ingest"
	"github.com/rewired-gh/draworacle/internal/models"
	"github.com/rewired-gh/draworacle/internal/predict"
	"github.com/rewired-gh/draworacle/internal/stats"
	"github.com/rewired-gh/draworacle/internal/storage"
)

type statsOutput struct {
	Stats             models.CategoryStats     `json:"stats"`
	DigitDistribution models.DistributionChart `json:"digit_distribution"`
}

type predictOutput struct {
	Predictions []models.PredictionResult `json:"predictions"`
}

// loadSeries reads a CSV history into a fresh store and returns its numbers.
func loadSeries(csvPath string) ([]models.DrawNumber, error) {
	records, err := ingest.ParseFile(csvPath)
	if err != nil {
		return nil, err
	}

	store := storage.New()
	store.Replace(records)
	numbers, _ := store.Snapshot()
	return numbers, nil
}

func runStats(w io.Writer, csvPath string) error {
	numbers, err := loadSeries(csvPath)
	if err != nil {
		return err
	}

	result, err := stats.Compute(numbers)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	return writeOutput(w, statsOutput{
		Stats:             result.Categories,
		DigitDistribution: result.Distribution.Chart(),
	})
}

func runPredict(w io.Writer, csvPath string) error {
	numbers, err := loadSeries(csvPath)
	if err != nil {
		return err
	}

	predictions, err := predict.Predict(numbers)
	if err != nil {
		return fmt.Errorf("failed to predict: %w", err)
	}

	return writeOutput(w, predictOutput{Predictions: predictions})
}

func writeOutput(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
