package dashboard

import (
	"slices"
	"strings"

	"github.com/sells-group/wellplay/internal/filter"
	"github.com/sells-group/wellplay/internal/model"
)

// OperatorSummary describes one top operator's completion design.
type OperatorSummary struct {
	Operator      string   `json:"operator"`
	Wells         int      `json:"wells"`
	LateralLength *Summary `json:"lateral_length_ft"`
	FracFluid     *Summary `json:"frac_fluid_gal_ft"`
	Proppant      *Summary `json:"proppant_lb_ft"`
}

// YearBand is the mean and interquartile band of a field for one drill year.
type YearBand struct {
	Year  int     `json:"year"`
	Wells int     `json:"wells"`
	Mean  float64 `json:"mean"`
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
}

// Trends holds the yearly bands of the completion fields.
type Trends struct {
	LateralLength []YearBand `json:"lateral_length_ft"`
	FracFluid     []YearBand `json:"frac_fluid_gal_ft"`
	Proppant      []YearBand `json:"proppant_lb_ft"`
}

// Comparison is the completion comparison across the top operators.
type Comparison struct {
	Operator  string            `json:"operator,omitempty"`
	Operators []OperatorSummary `json:"operators"`
	Trends    Trends            `json:"trends"`
}

var (
	lateralLength = func(w model.EnrichedWell) *float64 { return w.LateralLengthFt }
	fracFluid     = func(w model.EnrichedWell) *float64 { return w.NormFractureFluid }
	proppant      = func(w model.EnrichedWell) *float64 { return w.NormProppant }
)

// Compare summarizes the operator view. Summaries cover every selected
// operator; the yearly trends are narrowed to operator when it is non-empty.
func Compare(view filter.OperatorView, operator string, minYear int) Comparison {
	if minYear == 0 {
		minYear = DefaultMinYear
	}

	byOp := make(map[string][]model.EnrichedWell, len(view.Operators))
	for _, w := range view.Wells {
		name := strings.TrimSpace(w.OperatorName)
		byOp[name] = append(byOp[name], w)
	}

	summaries := make([]OperatorSummary, 0, len(view.Operators))
	for _, op := range view.Operators {
		wells := byOp[op.Operator]
		summaries = append(summaries, OperatorSummary{
			Operator:      op.Operator,
			Wells:         len(wells),
			LateralLength: Summarize(values(wells, lateralLength)),
			FracFluid:     Summarize(values(wells, fracFluid)),
			Proppant:      Summarize(values(wells, proppant)),
		})
	}

	trendWells := view.Wells
	operator = strings.TrimSpace(operator)
	if operator != "" {
		trendWells = byOp[operator]
	}

	return Comparison{
		Operator:  operator,
		Operators: summaries,
		Trends: Trends{
			LateralLength: YearBands(trendWells, lateralLength, minYear),
			FracFluid:     YearBands(trendWells, fracFluid, minYear),
			Proppant:      YearBands(trendWells, proppant, minYear),
		},
	}
}

// YearBands groups field by drill year from minYear on and returns each
// year's mean and interquartile range, oldest year first.
func YearBands(wells []model.EnrichedWell, field func(model.EnrichedWell) *float64, minYear int) []YearBand {
	byYear := make(map[int][]model.EnrichedWell)
	for _, w := range wells {
		if w.DrillingStartDate == nil || w.DrillingStartDate.Year() < minYear {
			continue
		}
		y := w.DrillingStartDate.Year()
		byYear[y] = append(byYear[y], w)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]YearBand, 0, len(years))
	for _, y := range years {
		s := Summarize(values(byYear[y], field))
		if s == nil {
			continue
		}
		out = append(out, YearBand{Year: y, Wells: s.Count, Mean: s.Mean, Q1: s.Q1, Q3: s.Q3})
	}
	return out
}
