package filter

import (
	"slices"
	"strings"

	"github.com/sells-group/wellplay/internal/model"
)

// Defaults for the operator comparison view.
const (
	DefaultTopOperators = 5
	DefaultMaxFracFluid = 4000.0 // gal/ft
	DefaultMaxProppant  = 5000.0 // lb/ft
)

// TopOperatorOptions configures TopOperators. Zero values take the defaults.
type TopOperatorOptions struct {
	N            int     `json:"n"`
	MaxFracFluid float64 `json:"max_frac_fluid"`
	MaxProppant  float64 `json:"max_proppant"`
}

func (o TopOperatorOptions) withDefaults() TopOperatorOptions {
	if o.N <= 0 {
		o.N = DefaultTopOperators
	}
	if o.MaxFracFluid <= 0 {
		o.MaxFracFluid = DefaultMaxFracFluid
	}
	if o.MaxProppant <= 0 {
		o.MaxProppant = DefaultMaxProppant
	}
	return o
}

// OperatorCount is an operator and its well count in the filtered set.
type OperatorCount struct {
	Operator string `json:"operator"`
	Wells    int    `json:"wells"`
}

// OperatorView holds the most active operators and their wells, with
// completion outliers removed.
type OperatorView struct {
	Operators []OperatorCount      `json:"operators"`
	Wells     []model.EnrichedWell `json:"wells"`
}

// Names returns the selected operator names, most wells first.
func (v OperatorView) Names() []string {
	names := make([]string, len(v.Operators))
	for i, op := range v.Operators {
		names[i] = op.Operator
	}
	return names
}

// RankOperators counts wells per operator and orders operators by count
// descending. Ties keep the order in which operators were first seen. Blank
// operator names are skipped.
func RankOperators(records []model.EnrichedWell) []OperatorCount {
	pos := make(map[string]int)
	var counts []OperatorCount
	for _, w := range records {
		name := strings.TrimSpace(w.OperatorName)
		if name == "" {
			continue
		}
		i, ok := pos[name]
		if !ok {
			i = len(counts)
			pos[name] = i
			counts = append(counts, OperatorCount{Operator: name})
		}
		counts[i].Wells++
	}
	slices.SortStableFunc(counts, func(a, b OperatorCount) int {
		return b.Wells - a.Wells
	})
	return counts
}

// TopOperators selects the N operators with the most wells and keeps their
// wells whose frac-fluid and proppant concentrations fall under the outlier
// caps. A well with a missing concentration is dropped from the view.
func TopOperators(records []model.EnrichedWell, opts TopOperatorOptions) OperatorView {
	opts = opts.withDefaults()

	ranked := RankOperators(records)
	if len(ranked) > opts.N {
		ranked = ranked[:opts.N]
	}
	selected := make(map[string]bool, len(ranked))
	for _, op := range ranked {
		selected[op.Operator] = true
	}

	wells := make([]model.EnrichedWell, 0)
	for _, w := range records {
		if !selected[strings.TrimSpace(w.OperatorName)] {
			continue
		}
		if w.NormFractureFluid == nil || *w.NormFractureFluid >= opts.MaxFracFluid {
			continue
		}
		if w.NormProppant == nil || *w.NormProppant >= opts.MaxProppant {
			continue
		}
		wells = append(wells, w)
	}

	return OperatorView{Operators: ranked, Wells: wells}
}
