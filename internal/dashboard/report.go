package dashboard

import (
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/wellplay/internal/filter"
)

// Options configures Build.
type Options struct {
	Metrics MetricOptions
	Views   ViewOptions
}

// Report is everything the dashboard renders for one filter result.
type Report struct {
	Wells        int                    `json:"wells"`
	Metrics      Tabs                   `json:"metrics"`
	TopOperators []filter.OperatorCount `json:"top_operators"`
	Comparison   Comparison             `json:"comparison"`
	Linked       LinkedViews            `json:"linked"`
	Extent       *geojson.Geometry      `json:"extent"`
}

// Build aggregates res under the chart selection sel. operator narrows the
// completion trends to one of the top operators.
func Build(res *filter.Result, sel Selection, operator string, opts Options) (*Report, error) {
	views := opts.Views.withDefaults()

	extent, err := ExtentGeoJSON(res.Wells)
	if err != nil {
		return nil, err
	}

	return &Report{
		Wells:        len(res.Wells),
		Metrics:      Metrics(res.Wells, opts.Metrics),
		TopOperators: res.Operators.Operators,
		Comparison:   Compare(res.Operators, operator, views.MinYear),
		Linked:       Linked(res.Wells, sel, views),
		Extent:       extent,
	}, nil
}
