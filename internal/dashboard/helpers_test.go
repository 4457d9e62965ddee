package dashboard

import (
	"time"

	"github.com/sells-group/wellplay/internal/enrich"
	"github.com/sells-group/wellplay/internal/model"
)

type wellOpt func(*model.WellRecord)

func at(lon, lat float64) wellOpt {
	return func(r *model.WellRecord) {
		r.LongitudeDeg = model.Float(lon)
		r.LatitudeDeg = model.Float(lat)
	}
}

func drilled(y int, m int) wellOpt {
	return func(r *model.WellRecord) {
		d := model.NewDate(y, time.Month(m), 15)
		r.DrillingStartDate = &d
	}
}

func inSubPlay(sp model.SubPlay) wellOpt {
	return func(r *model.WellRecord) { r.SubPlay = sp }
}

func byOperator(op string) wellOpt {
	return func(r *model.WellRecord) { r.OperatorName = op }
}

func withLateral(ft float64) wellOpt {
	return func(r *model.WellRecord) { r.LateralLengthFt = model.Float(ft) }
}

func withProduction(oil, gas float64) wellOpt {
	return func(r *model.WellRecord) {
		r.Cum30OilBbl = model.Float(oil)
		r.Cum30GasMcf = model.Float(gas)
	}
}

func withEUR(total, oil, gas float64) wellOpt {
	return func(r *model.WellRecord) {
		r.EURTotalMBOE = model.Float(total)
		r.EUROilMBbl = model.Float(oil)
		r.EURGasBscf = model.Float(gas)
	}
}

// newWell builds an enriched Black Oil well with a 5000 ft lateral, 2000
// gal/ft fluid and 1500 lb/ft proppant, then applies opts.
func newWell(name string, opts ...wellOpt) model.EnrichedWell {
	rec := model.WellRecord{
		Name:                   name,
		APINumber:              "42-" + name,
		OperatorName:           "EOG Resources",
		SubPlay:                model.SubPlayBlackOil,
		LateralLengthFt:        model.Float(5000),
		FractureFluidVolumeGal: model.Float(10_000_000),
		ProppantWeightLbs:      model.Float(7_500_000),
		TotalCostUSD:           model.Float(8_000_000),
		Cum30OilBbl:            model.Float(10000),
		Cum30GasMcf:            model.Float(10000),
		Cum90TotalBOE:          model.Float(50000),
	}
	for _, o := range opts {
		o(&rec)
	}
	return enrich.EnrichOne(rec)
}
