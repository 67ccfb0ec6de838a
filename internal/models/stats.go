package models

// PositionLabels names the four digit positions, leftmost first.
var PositionLabels = [4]string{"AS", "KOP", "KEPALA", "EKOR"}

// PositionColors are the chart color tokens the dashboard expects per position.
var PositionColors = [4]string{"#3b82f6", "#ef4444", "#10b981", "#f59e0b"}

// DigitDistribution holds, per position, the percentage of draws showing each digit.
type DigitDistribution [4][10]float64

// CategoryStats holds the last-digit category percentages of a series
type CategoryStats struct {
	Total  int     `json:"total"`
	Besar  float64 `json:"besar"`
	Kecil  float64 `json:"kecil"`
	Ganjil float64 `json:"ganjil"`
	Genap  float64 `json:"genap"`
}

// Statistics is the full result of a statistics pass.
type Statistics struct {
	Categories   CategoryStats
	Distribution DigitDistribution
}

// ChartDataset is one position row of the digit distribution in chart form.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
}

// DistributionChart is the chart-ready rendering of a DigitDistribution.
type DistributionChart struct {
	Labels   []int          `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// Chart converts the distribution into labelled datasets, one per position.
func (d DigitDistribution) Chart() DistributionChart {
	labels := make([]int, 10)
	for i := range labels {
		labels[i] = i
	}

	datasets := make([]ChartDataset, 0, len(PositionLabels))
	for pos, label := range PositionLabels {
		data := make([]float64, 10)
		copy(data, d[pos][:])
		datasets = append(datasets, ChartDataset{
			Label:           label,
			Data:            data,
			BackgroundColor: PositionColors[pos],
		})
	}

	return DistributionChart{Labels: labels, Datasets: datasets}
}

// MostFrequent returns the digit with the highest percentage at pos; ties go to the smaller digit.
func (d DigitDistribution) MostFrequent(pos int) (digit int, pct float64) {
	for v, p := range d[pos] {
		if p > pct {
			digit, pct = v, p
		}
	}
	return digit, pct
}
