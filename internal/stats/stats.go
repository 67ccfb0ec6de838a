// Package stats computes descriptive statistics over a draw series.
//
// Two results are produced in a single pass:
//
//	distribution[p][d] = 100 × count(draws with digit d at position p) / total
//	category           = 100 × count(last digit in category) / total
//
// Positions are AS, KOP, KEPALA and EKOR (leftmost to rightmost). The besar/kecil
// and ganjil/genap categories only look at the last digit.
package stats

import (
	"github.com/rewired-gh/draworacle/internal/logger"
	"github.com/rewired-gh/draworacle/internal/models"
)

// Compute returns the digit distribution and category percentages of numbers.
// It returns models.ErrEmptySeries when numbers is empty.
func Compute(numbers []models.DrawNumber) (*models.Statistics, error) {
	if len(numbers) == 0 {
		return nil, models.ErrEmptySeries
	}

	var counts [4][10]int
	var besar, kecil, ganjil, genap int

	for _, n := range numbers {
		digits := n.Digits()
		for pos, d := range digits {
			counts[pos][d]++
		}

		last := digits[3]
		if models.IsBesar(last) {
			besar++
		} else {
			kecil++
		}
		if models.IsGenap(last) {
			genap++
		} else {
			ganjil++
		}
	}

	total := len(numbers)
	result := &models.Statistics{
		Categories: models.CategoryStats{
			Total:  total,
			Besar:  percent(besar, total),
			Kecil:  percent(kecil, total),
			Ganjil: percent(ganjil, total),
			Genap:  percent(genap, total),
		},
	}
	for pos := range counts {
		for d, c := range counts[pos] {
			result.Distribution[pos][d] = percent(c, total)
		}
	}

	logger.Debug("Compute: total=%d besar=%d kecil=%d ganjil=%d genap=%d", total, besar, kecil, ganjil, genap)

	return result, nil
}

func percent(count, total int) float64 {
	return float64(count) / float64(total) * 100
}
