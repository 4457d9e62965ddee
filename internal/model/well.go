// Package model defines the well records, derived attributes and filter criteria
// shared by the enrichment, filter and presentation layers.
package model

// SubPlay is a named geological subdivision of the play.
type SubPlay string

const (
	SubPlayBlackOil            SubPlay = "Black Oil"
	SubPlayHawkvilleCondensate SubPlay = "Hawkville Condensate"
	SubPlayKarnesTrough        SubPlay = "Karnes Trough"
	SubPlayMaverickCondensate  SubPlay = "Maverick Condensate"
	SubPlayNortheastOil        SubPlay = "Northeast Oil"
	SubPlayEdwardsCondensate   SubPlay = "Edwards Condensate"
	SubPlayOtherEagleFord      SubPlay = "Other Eagle Ford"
	SubPlaySouthwestGas        SubPlay = "Southwest Gas"
	SubPlayMaverickOil         SubPlay = "Maverick Oil"
	SubPlaySoutheastGas        SubPlay = "Southeast Gas"
)

// SubPlays lists the known sub-plays in display order.
func SubPlays() []SubPlay {
	return []SubPlay{
		SubPlayBlackOil,
		SubPlayHawkvilleCondensate,
		SubPlayKarnesTrough,
		SubPlayMaverickCondensate,
		SubPlayNortheastOil,
		SubPlayEdwardsCondensate,
		SubPlayOtherEagleFord,
		SubPlaySouthwestGas,
		SubPlayMaverickOil,
		SubPlaySoutheastGas,
	}
}

// Known reports whether s is one of the ten known sub-plays.
func (s SubPlay) Known() bool {
	for _, k := range SubPlays() {
		if s == k {
			return true
		}
	}
	return false
}

// WellRecord is one drilled well as loaded from the source dataset.
// Numeric fields and the drilling date are nil when the source cell was
// missing or could not be parsed.
type WellRecord struct {
	Name         string  `json:"name"`
	APINumber    string  `json:"api_number"`
	OperatorName string  `json:"operator_name"`
	SubPlay      SubPlay `json:"sub_play_name"`

	LongitudeDeg        *float64 `json:"longitude_deg"`
	LatitudeDeg         *float64 `json:"latitude_deg"`
	TrueVerticalDepthFt *float64 `json:"tvd_ft"`

	DrillingStartDate *Date `json:"drilling_start_date"`

	LateralLengthFt        *float64 `json:"lateral_length_ft"`
	FractureFluidVolumeGal *float64 `json:"fracture_fluid_gal"`
	ProppantWeightLbs      *float64 `json:"proppant_lbs"`
	TotalCostUSD           *float64 `json:"total_cost_usd"`

	Cum30OilBbl   *float64 `json:"cum30_oil_bbl"`
	Cum30GasMcf   *float64 `json:"cum30_gas_mcf"`
	Cum90TotalBOE *float64 `json:"cum90_total_boe"`
	EURTotalMBOE  *float64 `json:"eur_total_mboe"`
	EUROilMBbl    *float64 `json:"eur_oil_mbbl"`
	EURGasBscf    *float64 `json:"eur_gas_bscf"`
}

// EnrichedWell is a WellRecord plus the attributes derived from it.
type EnrichedWell struct {
	WellRecord

	NormFractureFluid *float64  `json:"norm_fracture_fluid"` // gal/ft
	NormProppant      *float64  `json:"norm_proppant"`       // lb/ft
	NormTotalCost     *float64  `json:"norm_total_cost"`     // USD/ft
	GasOilRatio       *float64  `json:"gor"`                 // scf/bbl, clamped
	FluidType         FluidType `json:"fluid_type"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Value dereferences p, reporting whether it was set.
func Value(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
