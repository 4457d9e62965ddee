package dashboard

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sells-group/wellplay/internal/model"
)

// DefaultMinYear is the first drill year shown on time series charts.
const DefaultMinYear = 2009

// ViewOptions configures Linked.
type ViewOptions struct {
	MaxBins int
	MinYear int
}

func (o ViewOptions) withDefaults() ViewOptions {
	if o.MaxBins <= 0 {
		o.MaxBins = DefaultMaxBins
	}
	if o.MinYear == 0 {
		o.MinYear = DefaultMinYear
	}
	return o
}

// SubPlayCount is the number of wells in a sub-play.
type SubPlayCount struct {
	SubPlay model.SubPlay `json:"sub_play"`
	Wells   int           `json:"wells"`
}

// MapPoint is one well on the map. Selected reports whether it falls inside
// the map brush.
type MapPoint struct {
	Name      string          `json:"name"`
	APINumber string          `json:"api_number"`
	SubPlay   model.SubPlay   `json:"sub_play"`
	FluidType model.FluidType `json:"fluid_type"`
	Lon       float64         `json:"lon"`
	Lat       float64         `json:"lat"`
	Selected  bool            `json:"selected"`
}

// QuarterCount is the number of wells of a sub-play spudded in a quarter.
type QuarterCount struct {
	Period  string        `json:"period"` // e.g. 2015-Q3
	Year    int           `json:"year"`
	Quarter int           `json:"quarter"`
	SubPlay model.SubPlay `json:"sub_play"`
	Wells   int           `json:"wells"`
}

// FluidShare is a fluid type's slice of the pie.
type FluidShare struct {
	FluidType model.FluidType `json:"fluid_type"`
	Wells     int             `json:"wells"`
	Share     float64         `json:"share"`
}

// EURHistograms holds the EUR distributions.
type EURHistograms struct {
	Total Histogram `json:"total_mboe"`
	Oil   Histogram `json:"oil_mbbl"`
	Gas   Histogram `json:"gas_bscf"`
}

// LinkedViews is the cross-filtered chart data. Each series applies every
// selection except the one made on its own chart.
type LinkedViews struct {
	SubPlayCounts []SubPlayCount `json:"sub_play_counts"`
	MapPoints     []MapPoint     `json:"map_points"`
	Quarterly     []QuarterCount `json:"quarterly"`
	FluidShares   []FluidShare   `json:"fluid_shares"`
	EUR           EURHistograms  `json:"eur"`
}

// Linked builds every chart series for wells under sel.
func Linked(wells []model.EnrichedWell, sel Selection, opts ViewOptions) LinkedViews {
	opts = opts.withDefaults()

	byFluid := sel.apply(wells, brushFluid|brushMap)
	return LinkedViews{
		SubPlayCounts: SubPlayCounts(sel.apply(wells, brushMap|brushTime)),
		MapPoints:     MapPoints(sel.apply(wells, brushSubPlay|brushTime), sel.Map),
		Quarterly:     Quarterly(sel.apply(wells, brushSubPlay|brushMap), opts.MinYear),
		FluidShares:   FluidShares(sel.apply(wells, brushMap)),
		EUR: EURHistograms{
			Total: NewHistogram(values(byFluid, func(w model.EnrichedWell) *float64 { return w.EURTotalMBOE }), opts.MaxBins),
			Oil:   NewHistogram(values(byFluid, func(w model.EnrichedWell) *float64 { return w.EUROilMBbl }), opts.MaxBins),
			Gas:   NewHistogram(values(byFluid, func(w model.EnrichedWell) *float64 { return w.EURGasBscf }), opts.MaxBins),
		},
	}
}

// SubPlayCounts counts wells per sub-play, most wells first. Ties keep the
// order in which sub-plays were first seen. Blank sub-plays are skipped.
func SubPlayCounts(wells []model.EnrichedWell) []SubPlayCount {
	pos := make(map[model.SubPlay]int)
	out := make([]SubPlayCount, 0)
	for _, w := range wells {
		if w.SubPlay == "" {
			continue
		}
		i, ok := pos[w.SubPlay]
		if !ok {
			i = len(out)
			pos[w.SubPlay] = i
			out = append(out, SubPlayCount{SubPlay: w.SubPlay})
		}
		out[i].Wells++
	}
	slices.SortStableFunc(out, func(a, b SubPlayCount) int { return b.Wells - a.Wells })
	return out
}

// MapPoints returns the wells that have coordinates. When box is set, points
// inside it are marked selected; otherwise all are.
func MapPoints(wells []model.EnrichedWell, box *Box) []MapPoint {
	out := make([]MapPoint, 0, len(wells))
	for _, w := range wells {
		if w.LongitudeDeg == nil || w.LatitudeDeg == nil {
			continue
		}
		out = append(out, MapPoint{
			Name:      w.Name,
			APINumber: w.APINumber,
			SubPlay:   w.SubPlay,
			FluidType: w.FluidType,
			Lon:       *w.LongitudeDeg,
			Lat:       *w.LatitudeDeg,
			Selected:  box == nil || box.Contains(w),
		})
	}
	return out
}

// Quarterly counts wells per drill quarter and sub-play for drill years from
// minYear on, ordered by period then sub-play.
func Quarterly(wells []model.EnrichedWell, minYear int) []QuarterCount {
	type key struct {
		year, quarter int
		subPlay       model.SubPlay
	}
	counts := make(map[key]int)
	for _, w := range wells {
		if w.DrillingStartDate == nil || w.DrillingStartDate.Year() < minYear {
			continue
		}
		d := *w.DrillingStartDate
		counts[key{d.Year(), d.Quarter(), w.SubPlay}]++
	}

	out := make([]QuarterCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, QuarterCount{
			Period:  fmt.Sprintf("%d-Q%d", k.year, k.quarter),
			Year:    k.year,
			Quarter: k.quarter,
			SubPlay: k.subPlay,
			Wells:   n,
		})
	}
	slices.SortFunc(out, func(a, b QuarterCount) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Quarter, b.Quarter),
			cmp.Compare(a.SubPlay, b.SubPlay),
		)
	})
	return out
}

// FluidShares returns each fluid type's share of wells, in fluid-type order.
// Types with no wells are omitted.
func FluidShares(wells []model.EnrichedWell) []FluidShare {
	counts := make(map[model.FluidType]int)
	for _, w := range wells {
		counts[w.FluidType]++
	}
	out := make([]FluidShare, 0, len(counts))
	for _, ft := range model.AllFluidTypes() {
		n := counts[ft]
		if n == 0 {
			continue
		}
		out = append(out, FluidShare{FluidType: ft, Wells: n, Share: float64(n) / float64(len(wells))})
	}
	return out
}
