package dashboard

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/wellplay/internal/model"
)

// DefaultOilPriceUSD prices EUR in the revenue metric.
const DefaultOilPriceUSD = 80.0

// Metric is one headline number on a dashboard tab. Value is nil when the
// filtered set has nothing to average.
type Metric struct {
	Label   string   `json:"label"`
	Value   *float64 `json:"value"`
	Unit    string   `json:"unit"`
	Display string   `json:"display"`
}

// Tabs groups the headline metrics by dashboard tab.
type Tabs struct {
	Overview   []Metric `json:"overview"`
	Completion []Metric `json:"completion"`
	Production []Metric `json:"production"`
}

// MetricOptions configures Metrics.
type MetricOptions struct {
	OilPriceUSD float64
}

var printer = message.NewPrinter(language.English)

// roundTo rounds v to the nearest multiple of step, halves to even.
func roundTo(v, step float64) float64 {
	return math.RoundToEven(v/step) * step
}

// roundDP rounds v to dp decimal places, halves to even.
func roundDP(v float64, dp int) float64 {
	p := math.Pow(10, float64(dp))
	return math.RoundToEven(v*p) / p
}

func scaled(v *float64, fn func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	out := fn(*v)
	return &out
}

func metric(label string, v *float64, unit, format string) Metric {
	m := Metric{Label: label, Value: v, Unit: unit, Display: "n/a"}
	if v != nil {
		m.Display = printer.Sprintf(format, *v)
	}
	return m
}

// Metrics computes the overview, completion and production tab metrics.
func Metrics(wells []model.EnrichedWell, opts MetricOptions) Tabs {
	if opts.OilPriceUSD <= 0 {
		opts.OilPriceUSD = DefaultOilPriceUSD
	}

	count := float64(len(wells))
	cost := scaled(MeanOf(wells, func(w model.EnrichedWell) *float64 { return w.TotalCostUSD }),
		func(v float64) float64 { return roundDP(v/1e6, 1) })
	ip90 := scaled(MeanOf(wells, func(w model.EnrichedWell) *float64 { return w.Cum90TotalBOE }),
		func(v float64) float64 { return roundDP(v/1e3, 1) })

	nearest10 := func(v float64) float64 { return roundTo(v, 10) }
	lateral := scaled(MeanOf(wells, func(w model.EnrichedWell) *float64 { return w.LateralLengthFt }), nearest10)
	fluid := scaled(MeanOf(wells, func(w model.EnrichedWell) *float64 { return w.NormFractureFluid }), nearest10)
	proppant := scaled(MeanOf(wells, func(w model.EnrichedWell) *float64 { return w.NormProppant }), nearest10)

	eurMean := MeanOf(wells, func(w model.EnrichedWell) *float64 { return w.EURTotalMBOE })
	eur := scaled(eurMean, func(v float64) float64 { return roundDP(v, 2) })
	gor := scaled(MeanOf(wells, func(w model.EnrichedWell) *float64 { return w.GasOilRatio }), nearest10)
	revenue := scaled(eurMean, func(v float64) float64 { return roundTo(v*opts.OilPriceUSD, 10) })

	return Tabs{
		Overview: []Metric{
			metric("Wells Drilled", &count, "wells", "%.0f"),
			metric("Average Well Cost", cost, "$MM", "$%.1f MM"),
			metric("Average IP90", ip90, "K BOE", "%.1fK BOE"),
		},
		Completion: []Metric{
			metric("Average Lateral Length", lateral, "ft", "%.0f ft"),
			metric("Average Frac Fluid", fluid, "gal/ft", "%.0f gal/ft"),
			metric("Average Proppant", proppant, "lb/ft", "%.0f lb/ft"),
		},
		Production: []Metric{
			metric("Average EUR", eur, "MMBOE", "%.2f MMBOE"),
			metric("Average GOR", gor, "SCF/BL", "%.0f SCF/BL"),
			metric(printer.Sprintf("Average Revenue ($%.0f Oil Price)", opts.OilPriceUSD), revenue, "$MM", "$%.0f MM"),
		},
	}
}
