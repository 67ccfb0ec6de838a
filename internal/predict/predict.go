// Package predict produces the short-horizon forecast of the next draw.
//
// The forecast fits an ordinary least squares model (with intercept) on the most
// recent draws and reads one scalar from it:
//
//	features(n) = digits(n) / 9                     (4 values per draw)
//	target(n)   = features(n)[3]                    (normalized EKOR digit)
//	train       = window[:k-1]                      (the newest draw is held back)
//	pred        = model(features(window[k-1]))
//	digit       = round_half_even(pred × 9)
//
// The forecast number repeats digit four times. The target is one of the input
// features, so the fit mostly learns to copy it; results are fully deterministic
// and every forecast entry is identical. Digits are not clamped, so a pred outside
// [0, 1] yields values outside 0-9.
package predict

import (
	"math"

	"github.com/rewired-gh/draworacle/internal/logger"
	"github.com/rewired-gh/draworacle/internal/models"
)

const (
	// WindowSize is the maximum number of recent draws the model looks at.
	WindowSize = 30
	// Count is the number of forecast entries returned per call.
	Count = 3
)

// Predict returns Count forecast entries for the draw following numbers.
// It returns models.ErrEmptySeries when numbers is empty.
func Predict(numbers []models.DrawNumber) ([]models.PredictionResult, error) {
	if len(numbers) == 0 {
		return nil, models.ErrEmptySeries
	}

	window := numbers
	if len(window) > WindowSize {
		window = window[len(window)-WindowSize:]
	}
	features := normalize(window)

	results := make([]models.PredictionResult, 0, Count)
	for i := 0; i < Count; i++ {
		pred := fitAndPredict(features)
		results = append(results, forecast(pred))
	}

	logger.Debug("Predict: window=%d number=%s shio=%s", len(window), results[0].Number, results[0].Shio)

	return results, nil
}

// fitAndPredict trains on every row except the newest and evaluates the model on
// the newest row. A single-row window trains on that row alone.
func fitAndPredict(features [][]float64) float64 {
	k := len(features)
	train := features[:k-1]
	if len(train) == 0 {
		train = features
	}

	targets := make([]float64, len(train))
	for i, row := range train {
		targets[i] = row[3]
	}

	m := fitOLS(train, targets)
	return m.predict(features[k-1])
}

// forecast quantizes pred into a draw and labels it.
func forecast(pred float64) models.PredictionResult {
	d := int(math.RoundToEven(pred * 9))
	digits := []int{d, d, d, d}

	return models.PredictionResult{
		Number: models.JoinDigits(digits),
		Shio:   models.ShioFor(models.ConcatValue(digits[2], digits[3])),
		Ekor:   models.EkorLabel(digits[3]),
	}
}

func normalize(window []models.DrawNumber) [][]float64 {
	rows := make([][]float64, len(window))
	for i, n := range window {
		digits := n.Digits()
		row := make([]float64, len(digits))
		for j, d := range digits {
			row[j] = float64(d) / 9
		}
		rows[i] = row
	}
	return rows
}
