package predict

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// minSingularValue is the absolute floor below which the centered design is
// treated as having no spread at all.
const minSingularValue = 1e-12

// linearModel is a fitted y = intercept + coef·x.
type linearModel struct {
	coef      []float64
	intercept float64
}

// fitOLS fits a linear model with intercept by least squares. The inputs are
// centered first and the minimum-norm solution is taken, so rank-deficient
// designs (including a single row) are fine.
func fitOLS(x [][]float64, y []float64) linearModel {
	rows, cols := len(x), len(x[0])

	xMean := make([]float64, cols)
	var yMean float64
	for i, row := range x {
		for j, v := range row {
			xMean[j] += v
		}
		yMean += y[i]
	}
	for j := range xMean {
		xMean[j] /= float64(rows)
	}
	yMean /= float64(rows)

	// A column with no spread centers to exact zeros; v-mean would leave
	// rounding noise the solver could fit.
	constant := make([]bool, cols)
	for j := range constant {
		constant[j] = true
		for _, row := range x {
			if row[j] != x[0][j] {
				constant[j] = false
				break
			}
		}
	}

	centered := mat.NewDense(rows, cols, nil)
	yc := mat.NewVecDense(rows, nil)
	for i, row := range x {
		for j, v := range row {
			if !constant[j] {
				centered.Set(i, j, v-xMean[j])
			}
		}
		yc.SetVec(i, y[i]-yMean)
	}

	coef := make([]float64, cols)

	var svd mat.SVD
	if svd.Factorize(centered, mat.SVDThin) {
		rcond := math.Nextafter(1, 2) - 1
		rcond *= float64(max(rows, cols))
		values := svd.Values(nil)
		if rank := svd.Rank(rcond); rank > 0 && values[0] > minSingularValue {
			var sol mat.VecDense
			svd.SolveVecTo(&sol, yc, rank)
			for j := range coef {
				coef[j] = sol.AtVec(j)
			}
		}
	}

	intercept := yMean
	for j, c := range coef {
		intercept -= xMean[j] * c
	}

	return linearModel{coef: coef, intercept: intercept}
}

func (m linearModel) predict(x []float64) float64 {
	v := m.intercept
	for j, c := range m.coef {
		v += c * x[j]
	}
	return v
}
