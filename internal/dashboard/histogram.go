package dashboard

import (
	"math"
	"slices"
)

// DefaultMaxBins caps the number of histogram bins.
const DefaultMaxBins = 100

// Bin is one histogram bucket [Lo, Hi). The last bin is closed at Hi.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram is a binned distribution with a nice step.
type Histogram struct {
	Step  float64 `json:"step"`
	Bins  []Bin   `json:"bins"`
	Total int     `json:"total"`
}

// niceStep picks a step of the form 1, 2 or 5 times a power of ten so that
// span is covered by at most maxBins bins.
func niceStep(span float64, maxBins int) float64 {
	if span <= 0 {
		return 1
	}
	maxb := float64(maxBins)
	level := math.Ceil(math.Log10(maxb) - 1e-9)
	step := math.Pow(10, math.Round(math.Log10(span))-level)
	for math.Ceil(span/step) > maxb {
		step *= 10
	}
	for _, div := range []float64{5, 2} {
		if v := step / div; span/v <= maxb {
			step = v
		}
	}
	return step
}

// alignBins snaps [lo, hi] outward to multiples of step and returns the first
// edge and the bin count. Outward alignment can need one bin more than the
// raw span does.
func alignBins(lo, hi, step float64) (float64, int) {
	start := math.Floor(lo/step) * step
	stop := math.Ceil(hi/step) * step
	if stop <= start {
		stop = start + step
	}
	return start, int(math.Round((stop - start) / step))
}

// nextNiceStep returns the next larger step in the 1, 2, 5 sequence.
func nextNiceStep(step float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(step)))
	m := math.Round(step / mag)
	if m >= 10 {
		mag *= 10
		m = 1
	}
	switch {
	case m < 2:
		return 2 * mag
	case m < 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// NewHistogram bins xs on a nice step chosen so the edges, aligned to
// multiples of the step, give at most maxBins bins. Data straddling zero
// always needs two bins. An empty input yields an empty histogram.
func NewHistogram(xs []float64, maxBins int) Histogram {
	if maxBins <= 0 {
		maxBins = DefaultMaxBins
	}
	if len(xs) == 0 {
		return Histogram{Bins: []Bin{}}
	}

	lo, hi := slices.Min(xs), slices.Max(xs)
	step := niceStep(hi-lo, maxBins)
	start, n := alignBins(lo, hi, step)
	for n > max(maxBins, 2) {
		step = nextNiceStep(step)
		start, n = alignBins(lo, hi, step)
	}

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lo: start + float64(i)*step, Hi: start + float64(i+1)*step}
	}
	for _, x := range xs {
		i := int(math.Floor((x - start) / step))
		i = max(0, min(i, n-1))
		bins[i].Count++
	}
	return Histogram{Step: step, Bins: bins, Total: len(xs)}
}
