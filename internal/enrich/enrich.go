// Package enrich derives per-well completion and fluid attributes from raw
// well records.
package enrich

import (
	"math"

	"github.com/sells-group/wellplay/internal/model"
)

// gasScale converts Mcf to scf for the gas-oil ratio.
const gasScale = 1000.0

// Enrich derives the normalized completion metrics, gas-oil ratio and fluid
// type for every record. The output has the same length and order as raw;
// a record with missing inputs gets nil derived fields, never an error.
func Enrich(raw []model.WellRecord) []model.EnrichedWell {
	out := make([]model.EnrichedWell, len(raw))
	for i, r := range raw {
		out[i] = EnrichOne(r)
	}
	return out
}

// EnrichOne derives the attributes of a single record.
func EnrichOne(r model.WellRecord) model.EnrichedWell {
	gor := GasOilRatio(r.Cum30GasMcf, r.Cum30OilBbl)
	return model.EnrichedWell{
		WellRecord:        r,
		NormFractureFluid: Normalize(r.FractureFluidVolumeGal, r.LateralLengthFt),
		NormProppant:      Normalize(r.ProppantWeightLbs, r.LateralLengthFt),
		NormTotalCost:     Normalize(r.TotalCostUSD, r.LateralLengthFt),
		GasOilRatio:       gor,
		FluidType:         ClassifyFluid(gor),
	}
}

// Reenrich recomputes the derived attributes of already-enriched records from
// their raw fields. Enrich(x) and Reenrich(Enrich(x)) are identical.
func Reenrich(wells []model.EnrichedWell) []model.EnrichedWell {
	out := make([]model.EnrichedWell, len(wells))
	for i, w := range wells {
		out[i] = EnrichOne(w.WellRecord)
	}
	return out
}

// Normalize divides value by lateralFt. It returns nil when either input is
// missing, when the lateral length is not positive, or when the result is not
// finite.
func Normalize(value, lateralFt *float64) *float64 {
	if value == nil || lateralFt == nil || *lateralFt <= 0 {
		return nil
	}
	return finite(*value / *lateralFt)
}

// GasOilRatio returns cumulative 30-day gas (Mcf) over oil (bbl) in scf/bbl,
// clamped to model.MaxGOR. It is nil when oil is zero or either volume is
// missing.
func GasOilRatio(gasMcf, oilBbl *float64) *float64 {
	if gasMcf == nil || oilBbl == nil || *oilBbl == 0 {
		return nil
	}
	gor := finite(*gasMcf * gasScale / *oilBbl)
	if gor == nil {
		return nil
	}
	if *gor > model.MaxGOR {
		return model.Float(model.MaxGOR)
	}
	return gor
}

// ClassifyFluid maps a gas-oil ratio onto its fluid band.
//
//	GOR <= 2500    Black Oil
//	GOR <= 5000    Volatile Oil
//	GOR <= 100000  Gas Condensate
//	GOR >  100000  Gas
//	nil            Null
func ClassifyFluid(gor *float64) model.FluidType {
	if gor == nil {
		return model.FluidNull
	}
	switch g := *gor; {
	case g <= model.BlackOilMaxGOR:
		return model.FluidBlackOil
	case g <= model.VolatileOilMaxGOR:
		return model.FluidVolatileOil
	case g <= model.GasCondensateMaxGOR:
		return model.FluidGasCondensate
	default:
		return model.FluidGas
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
