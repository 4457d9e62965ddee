package model

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

// FloatRange is an open numeric interval (Lo, Hi).
type FloatRange struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// Contains reports whether Lo < v < Hi. A nil value is never contained.
func (r FloatRange) Contains(v *float64) bool {
	if v == nil {
		return false
	}
	return r.Lo < *v && *v < r.Hi
}

// DateRange is an open date interval (Lo, Hi).
type DateRange struct {
	Lo Date `json:"lo" yaml:"lo"`
	Hi Date `json:"hi" yaml:"hi"`
}

// Contains reports whether Lo < d < Hi. A nil date is never contained.
func (r DateRange) Contains(d *Date) bool {
	if d == nil {
		return false
	}
	return r.Lo.Before(d.Time) && d.Before(r.Hi.Time)
}

// FilterCriteria selects a subset of enriched wells. A nil range imposes no
// constraint; the sub-play and fluid-type sets always apply, so an empty set
// keeps nothing.
type FilterCriteria struct {
	SampleFraction float64     `json:"sample_fraction" yaml:"sample_fraction" validate:"gte=0,lte=1"`
	SubPlays       []SubPlay   `json:"sub_plays" yaml:"sub_plays"`
	FluidTypes     []FluidType `json:"fluid_types" yaml:"fluid_types" validate:"dive,oneof='Black Oil' 'Volatile Oil' 'Gas Condensate' 'Gas' 'Null'"`

	TVD                    *FloatRange `json:"tvd_ft,omitempty" yaml:"tvd_ft,omitempty"`
	DrillDate              *DateRange  `json:"drill_date,omitempty" yaml:"drill_date,omitempty"`
	LateralLength          *FloatRange `json:"lateral_length_ft,omitempty" yaml:"lateral_length_ft,omitempty"`
	ProppantConcentration  *FloatRange `json:"proppant_lb_ft,omitempty" yaml:"proppant_lb_ft,omitempty"`
	FracFluidConcentration *FloatRange `json:"frac_fluid_gal_ft,omitempty" yaml:"frac_fluid_gal_ft,omitempty"`
}

// DefaultCriteria returns the dashboard's initial control state: a 25%
// sample, every sub-play, every non-Null fluid type and the full slider ranges.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		SampleFraction:         0.25,
		SubPlays:               SubPlays(),
		FluidTypes:             FluidTypes(),
		TVD:                    &FloatRange{Lo: 0, Hi: 20000},
		DrillDate:              &DateRange{Lo: NewDate(2009, 1, 1), Hi: NewDate(2023, 1, 1)},
		LateralLength:          &FloatRange{Lo: 0, Hi: 18000},
		ProppantConcentration:  &FloatRange{Lo: 0, Hi: 5000},
		FracFluidConcentration: &FloatRange{Lo: 0, Hi: 4000},
	}
}

// Clone returns a deep copy of c; the copy shares no slices or ranges with c.
func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	if c.SubPlays != nil {
		out.SubPlays = slices.Clone(c.SubPlays)
	}
	if c.FluidTypes != nil {
		out.FluidTypes = slices.Clone(c.FluidTypes)
	}
	out.TVD = cloneRange(c.TVD)
	out.LateralLength = cloneRange(c.LateralLength)
	out.ProppantConcentration = cloneRange(c.ProppantConcentration)
	out.FracFluidConcentration = cloneRange(c.FracFluidConcentration)
	if c.DrillDate != nil {
		d := *c.DrillDate
		out.DrillDate = &d
	}
	return out
}

func cloneRange(r *FloatRange) *FloatRange {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}

// HasSubPlay reports whether s is selected.
func (c FilterCriteria) HasSubPlay(s SubPlay) bool {
	for _, v := range c.SubPlays {
		if v == s {
			return true
		}
	}
	return false
}

// HasFluidType reports whether f is selected.
func (c FilterCriteria) HasFluidType(f FluidType) bool {
	for _, v := range c.FluidTypes {
		if v == f {
			return true
		}
	}
	return false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func criteriaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterStructValidation(func(sl validator.StructLevel) {
			r := sl.Current().Interface().(FloatRange)
			if r.Lo > r.Hi {
				sl.ReportError(r.Lo, "Lo", "Lo", "ltefield", "Hi")
			}
		}, FloatRange{})
		validate.RegisterStructValidation(func(sl validator.StructLevel) {
			r := sl.Current().Interface().(DateRange)
			if r.Lo.After(r.Hi.Time) {
				sl.ReportError(r.Lo, "Lo", "Lo", "ltefield", "Hi")
			}
		}, DateRange{})
	})
	return validate
}

// Validate checks the sampling fraction, fluid-type labels and range bounds.
func (c FilterCriteria) Validate() error {
	err := criteriaValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return eris.Wrap(err, "model: validate criteria")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, validationMessage(fe))
	}
	return eris.Errorf("model: invalid criteria: %s", strings.Join(msgs, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Namespace(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Namespace(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Namespace(), fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", fe.Namespace(), fe.Param())
	default:
		return fe.Namespace() + " is invalid"
	}
}

// ParseFloatRange parses "lo:hi". Either side may be blank to take the
// corresponding bound of def.
func ParseFloatRange(s string, def FloatRange) (FloatRange, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return FloatRange{}, eris.Errorf("model: range %q is not lo:hi", s)
	}
	r := def
	if v := strings.TrimSpace(lo); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return FloatRange{}, eris.Wrapf(err, "model: range %q lower bound", s)
		}
		r.Lo = f
	}
	if v := strings.TrimSpace(hi); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return FloatRange{}, eris.Wrapf(err, "model: range %q upper bound", s)
		}
		r.Hi = f
	}
	return r, nil
}

// ParseDateRange parses "lo:hi" where each side is a YYYY-MM-DD date. Either
// side may be blank to take the corresponding bound of def.
func ParseDateRange(s string, def DateRange) (DateRange, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return DateRange{}, eris.Errorf("model: date range %q is not lo:hi", s)
	}
	r := def
	if v := strings.TrimSpace(lo); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			return DateRange{}, eris.Wrapf(err, "model: date range %q lower bound", s)
		}
		r.Lo = d
	}
	if v := strings.TrimSpace(hi); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			return DateRange{}, eris.Wrapf(err, "model: date range %q upper bound", s)
		}
		r.Hi = d
	}
	return r, nil
}
