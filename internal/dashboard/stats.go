// Package dashboard aggregates a filtered well set into the numbers and
// series the dashboard renders: tab metrics, cross-filtered chart data,
// operator completion comparisons and the map extent.
package dashboard

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/sells-group/wellplay/internal/model"
)

// values collects the present, finite values of field over wells.
func values(wells []model.EnrichedWell, field func(model.EnrichedWell) *float64) []float64 {
	out := make([]float64, 0, len(wells))
	for _, w := range wells {
		if v := field(w); v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) {
			out = append(out, *v)
		}
	}
	return out
}

// Mean averages the present values. It returns nil when there are none.
func Mean(vals []*float64) *float64 {
	xs := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) {
			xs = append(xs, *v)
		}
	}
	return meanOf(xs)
}

// MeanOf averages field over wells, skipping missing values.
func MeanOf(wells []model.EnrichedWell, field func(model.EnrichedWell) *float64) *float64 {
	return meanOf(values(wells, field))
}

func meanOf(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := stat.Mean(xs, nil)
	return &m
}

// Summary describes the distribution of one field.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summarize returns the distribution of xs, or nil when xs is empty.
// Quartiles interpolate linearly between order statistics.
func Summarize(xs []float64) *Summary {
	if len(xs) == 0 {
		return nil
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return &Summary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Q1:     quantile(0.25, sorted),
		Median: quantile(0.5, sorted),
		Q3:     quantile(0.75, sorted),
		Max:    sorted[len(sorted)-1],
	}
}

// quantile uses the (n-1)p rank convention over sorted data.
func quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (rank-float64(lo))*(sorted[lo+1]-sorted[lo])
}
