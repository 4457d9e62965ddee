package dashboard

import (
	"slices"

	"github.com/sells-group/wellplay/internal/model"
)

// Box is a longitude/latitude rectangle brushed on the map. Bounds are
// inclusive.
type Box struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Contains reports whether the well's coordinates fall inside b.
func (b Box) Contains(w model.EnrichedWell) bool {
	if w.LongitudeDeg == nil || w.LatitudeDeg == nil {
		return false
	}
	lon, lat := *w.LongitudeDeg, *w.LatitudeDeg
	return b.MinLon <= lon && lon <= b.MaxLon && b.MinLat <= lat && lat <= b.MaxLat
}

// TimeWindow is a drill-date interval brushed on the quarterly chart.
// Bounds are inclusive.
type TimeWindow struct {
	From model.Date `json:"from"`
	To   model.Date `json:"to"`
}

// Contains reports whether the well was drilled inside t.
func (t TimeWindow) Contains(w model.EnrichedWell) bool {
	if w.DrillingStartDate == nil {
		return false
	}
	d := w.DrillingStartDate.Time
	return !d.Before(t.From.Time) && !d.After(t.To.Time)
}

// Selection holds the cross-chart selections. A nil or empty member selects
// everything.
type Selection struct {
	Map        *Box              `json:"map,omitempty"`
	SubPlays   []model.SubPlay   `json:"sub_plays,omitempty"`
	Time       *TimeWindow       `json:"time,omitempty"`
	FluidTypes []model.FluidType `json:"fluid_types,omitempty"`
}

// brush names one member of a Selection.
type brush int

const (
	brushMap brush = 1 << iota
	brushSubPlay
	brushTime
	brushFluid
)

// matches applies the members of s named in use.
func (s Selection) matches(w model.EnrichedWell, use brush) bool {
	if use&brushMap != 0 && s.Map != nil && !s.Map.Contains(w) {
		return false
	}
	if use&brushSubPlay != 0 && len(s.SubPlays) > 0 && !slices.Contains(s.SubPlays, w.SubPlay) {
		return false
	}
	if use&brushTime != 0 && s.Time != nil && !s.Time.Contains(w) {
		return false
	}
	if use&brushFluid != 0 && len(s.FluidTypes) > 0 && !slices.Contains(s.FluidTypes, w.FluidType) {
		return false
	}
	return true
}

func (s Selection) apply(wells []model.EnrichedWell, use brush) []model.EnrichedWell {
	out := make([]model.EnrichedWell, 0, len(wells))
	for _, w := range wells {
		if s.matches(w, use) {
			out = append(out, w)
		}
	}
	return out
}
