// Package filter selects the subset of enriched wells that satisfies a set of
// filter criteria and derives the top-operator comparison view.
package filter

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/wellplay/internal/model"
)

// ErrInvalidCriteria is wrapped by Apply when the criteria fail validation.
var ErrInvalidCriteria = eris.New("filter: invalid criteria")

// DefaultSeed seeds the sampler when no WithSeed option is given.
const DefaultSeed uint64 = 1

// Option customizes Apply.
type Option func(*options)

type options struct {
	seed uint64
}

// WithSeed overrides the sampling seed.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// Apply returns the records satisfying every predicate of c, in input order.
// The sample is drawn from the input before the remaining predicates run.
// The input slice is never modified; an empty result is not an error.
func Apply(records []model.EnrichedWell, c model.FilterCriteria, opts ...Option) ([]model.EnrichedWell, error) {
	o := options{seed: DefaultSeed}
	for _, fn := range opts {
		fn(&o)
	}

	if err := c.Validate(); err != nil {
		return nil, eris.Wrap(ErrInvalidCriteria, err.Error())
	}

	idx := SampleIndices(len(records), c.SampleFraction, o.seed)
	out := make([]model.EnrichedWell, 0, len(idx))
	for _, i := range idx {
		if Match(records[i], c) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// Match reports whether w passes every non-sampling predicate of c. Range
// bounds are exclusive on both ends, and a nil value fails any range present.
func Match(w model.EnrichedWell, c model.FilterCriteria) bool {
	if !c.HasSubPlay(w.SubPlay) || !c.HasFluidType(w.FluidType) {
		return false
	}
	if c.TVD != nil && !c.TVD.Contains(w.TrueVerticalDepthFt) {
		return false
	}
	if c.DrillDate != nil && !c.DrillDate.Contains(w.DrillingStartDate) {
		return false
	}
	if c.LateralLength != nil && !c.LateralLength.Contains(w.LateralLengthFt) {
		return false
	}
	if c.ProppantConcentration != nil && !c.ProppantConcentration.Contains(w.NormProppant) {
		return false
	}
	if c.FracFluidConcentration != nil && !c.FracFluidConcentration.Contains(w.NormFractureFluid) {
		return false
	}
	return true
}

// Result bundles the filtered wells with the operator comparison view.
type Result struct {
	Wells     []model.EnrichedWell `json:"wells"`
	Operators OperatorView         `json:"operators"`
}

// Run applies c and derives the top-operator view from the filtered set.
func Run(records []model.EnrichedWell, c model.FilterCriteria, top TopOperatorOptions, opts ...Option) (*Result, error) {
	wells, err := Apply(records, c, opts...)
	if err != nil {
		return nil, err
	}
	return &Result{
		Wells:     wells,
		Operators: TopOperators(wells, top),
	}, nil
}
