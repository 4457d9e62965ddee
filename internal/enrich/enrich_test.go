package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/wellplay/internal/model"
)

func well(lateral, fluid, proppant, cost, oil, gas *float64) model.WellRecord {
	return model.WellRecord{
		Name:                   "W-1",
		APINumber:              "42-255-00001",
		OperatorName:           "EOG",
		SubPlay:                model.SubPlayKarnesTrough,
		LateralLengthFt:        lateral,
		FractureFluidVolumeGal: fluid,
		ProppantWeightLbs:      proppant,
		TotalCostUSD:           cost,
		Cum30OilBbl:            oil,
		Cum30GasMcf:            gas,
	}
}

func TestEnrichOne_Normalized(t *testing.T) {
	w := EnrichOne(well(model.Float(5000), model.Float(10_000_000), model.Float(7_500_000), model.Float(6_000_000), model.Float(100), model.Float(100)))

	require.NotNil(t, w.NormFractureFluid)
	require.NotNil(t, w.NormProppant)
	require.NotNil(t, w.NormTotalCost)
	assert.InDelta(t, 2000, *w.NormFractureFluid, 1e-9)
	assert.InDelta(t, 1500, *w.NormProppant, 1e-9)
	assert.InDelta(t, 1200, *w.NormTotalCost, 1e-9)
}

func TestEnrichOne_InvalidLateral(t *testing.T) {
	tests := []struct {
		name    string
		lateral *float64
	}{
		{"zero", model.Float(0)},
		{"negative", model.Float(-10)},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := EnrichOne(well(tt.lateral, model.Float(1000), model.Float(1000), model.Float(1000), model.Float(10), model.Float(10)))
			assert.Nil(t, w.NormFractureFluid)
			assert.Nil(t, w.NormProppant)
			assert.Nil(t, w.NormTotalCost)
		})
	}
}

func TestEnrichOne_MissingNumerator(t *testing.T) {
	w := EnrichOne(well(model.Float(4000), nil, model.Float(8000), nil, nil, nil))
	assert.Nil(t, w.NormFractureFluid)
	assert.Nil(t, w.NormTotalCost)
	require.NotNil(t, w.NormProppant)
	assert.InDelta(t, 2, *w.NormProppant, 1e-9)
}

func TestGasOilRatio_ClampedToGas(t *testing.T) {
	w := EnrichOne(well(model.Float(5000), nil, nil, nil, model.Float(1), model.Float(5000)))

	require.NotNil(t, w.GasOilRatio)
	assert.Equal(t, 200000.0, *w.GasOilRatio)
	assert.Equal(t, model.FluidGas, w.FluidType)
}

func TestGasOilRatio_ZeroOil(t *testing.T) {
	w := EnrichOne(well(model.Float(5000), nil, nil, nil, model.Float(0), model.Float(5000)))
	assert.Nil(t, w.GasOilRatio)
	assert.Equal(t, model.FluidNull, w.FluidType)
}

func TestGasOilRatio_Missing(t *testing.T) {
	assert.Nil(t, GasOilRatio(model.Float(10), nil))
	assert.Nil(t, GasOilRatio(nil, model.Float(10)))
	assert.Equal(t, model.FluidNull, ClassifyFluid(nil))
}

func TestClassifyFluid_Bands(t *testing.T) {
	tests := []struct {
		gor  float64
		want model.FluidType
	}{
		{0, model.FluidBlackOil},
		{2500, model.FluidBlackOil},
		{2500.01, model.FluidVolatileOil},
		{5000, model.FluidVolatileOil},
		{5001, model.FluidGasCondensate},
		{100000, model.FluidGasCondensate},
		{100000.5, model.FluidGas},
		{200000, model.FluidGas},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyFluid(model.Float(tt.gor)), "gor=%v", tt.gor)
	}
}

func TestEnrich_PreservesOrderAndLength(t *testing.T) {
	raw := []model.WellRecord{
		{Name: "a", Cum30OilBbl: model.Float(0)},
		{Name: "b", LateralLengthFt: model.Float(0)},
		{Name: "c"},
	}

	out := Enrich(raw)
	require.Len(t, out, 3)
	for i := range raw {
		assert.Equal(t, raw[i].Name, out[i].Name)
	}
}

func TestEnrich_Idempotent(t *testing.T) {
	raw := []model.WellRecord{
		well(model.Float(6000), model.Float(12_000_000), model.Float(9_000_000), model.Float(7_000_000), model.Float(900), model.Float(1200)),
		well(model.Float(0), model.Float(1), model.Float(1), model.Float(1), model.Float(0), model.Float(1)),
		well(nil, nil, nil, nil, nil, nil),
		well(model.Float(7000), model.Float(1), model.Float(1), model.Float(1), model.Float(1), model.Float(9000)),
	}

	once := Enrich(raw)
	twice := Reenrich(once)
	assert.Equal(t, once, twice)
}

func TestEnrich_GORNeverExceedsClamp(t *testing.T) {
	raw := []model.WellRecord{
		{Cum30OilBbl: model.Float(0.0001), Cum30GasMcf: model.Float(1e9)},
		{Cum30OilBbl: model.Float(1), Cum30GasMcf: model.Float(199)},
		{Cum30OilBbl: model.Float(-1), Cum30GasMcf: model.Float(10)},
	}
	for _, w := range Enrich(raw) {
		if w.GasOilRatio != nil {
			assert.LessOrEqual(t, *w.GasOilRatio, model.MaxGOR)
		}
	}
}

func TestEnrich_Empty(t *testing.T) {
	assert.Empty(t, Enrich(nil))
}
