package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/wellplay/internal/enrich"
	"github.com/sells-group/wellplay/internal/model"
)

// openCriteria keeps every well: full sample, all sets, no ranges.
func openCriteria() model.FilterCriteria {
	return model.FilterCriteria{
		SampleFraction: 1,
		SubPlays:       model.SubPlays(),
		FluidTypes:     model.AllFluidTypes(),
	}
}

func testWell(name string, tvd float64, drilled model.Date) model.EnrichedWell {
	d := drilled
	return enrich.EnrichOne(model.WellRecord{
		Name:                   name,
		APINumber:              "42-" + name,
		OperatorName:           "EOG Resources",
		SubPlay:                model.SubPlayBlackOil,
		TrueVerticalDepthFt:    model.Float(tvd),
		DrillingStartDate:      &d,
		LateralLengthFt:        model.Float(6000),
		FractureFluidVolumeGal: model.Float(12_000_000),
		ProppantWeightLbs:      model.Float(9_000_000),
		TotalCostUSD:           model.Float(7_500_000),
		Cum30OilBbl:            model.Float(10000),
		Cum30GasMcf:            model.Float(8000),
		Cum90TotalBOE:          model.Float(45000),
	})
}

func tenWells() []model.EnrichedWell {
	wells := make([]model.EnrichedWell, 10)
	for i := range wells {
		wells[i] = testWell(fmt.Sprintf("w%02d", i), 10000+float64(i)*100, model.NewDate(2012+i, 6, 1))
	}
	return wells
}

func names(wells []model.EnrichedWell) []string {
	out := make([]string, len(wells))
	for i, w := range wells {
		out[i] = w.Name
	}
	return out
}

func TestApply_OpenCriteriaKeepsAll(t *testing.T) {
	wells := tenWells()
	out, err := Apply(wells, openCriteria())
	require.NoError(t, err)
	assert.Equal(t, names(wells), names(out))
}

func TestApply_PreservesOrder(t *testing.T) {
	wells := tenWells()
	c := openCriteria()
	c.TVD = &model.FloatRange{Lo: 10150, Hi: 10750}

	out, err := Apply(wells, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"w02", "w03", "w04", "w05", "w06", "w07"}, names(out))
}

func TestApply_TVDBoundaryExcluded(t *testing.T) {
	wells := tenWells()
	c := openCriteria()
	c.TVD = &model.FloatRange{Lo: 10000, Hi: 10900}

	out, err := Apply(wells, c)
	require.NoError(t, err)
	assert.NotContains(t, names(out), "w00", "lower bound is exclusive")
	assert.NotContains(t, names(out), "w09", "upper bound is exclusive")
	assert.Len(t, out, 8)
}

func TestApply_DateBoundaryExcluded(t *testing.T) {
	wells := tenWells()
	c := openCriteria()
	c.DrillDate = &model.DateRange{Lo: model.NewDate(2012, 6, 1), Hi: model.NewDate(2014, 6, 1)}

	out, err := Apply(wells, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"w01"}, names(out))
}

func TestApply_ImpossibleDateRangeIsEmpty(t *testing.T) {
	wells := tenWells()
	c := openCriteria()
	c.DrillDate = &model.DateRange{Lo: model.NewDate(1990, 1, 1), Hi: model.NewDate(1991, 1, 1)}

	out, err := Apply(wells, c)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApply_NilValueFailsRange(t *testing.T) {
	wells := tenWells()
	wells[3].TrueVerticalDepthFt = nil
	wells[4].DrillingStartDate = nil
	wells[5].NormProppant = nil

	c := openCriteria()
	c.TVD = &model.FloatRange{Lo: 0, Hi: 20000}
	c.DrillDate = &model.DateRange{Lo: model.NewDate(2000, 1, 1), Hi: model.NewDate(2030, 1, 1)}
	c.ProppantConcentration = &model.FloatRange{Lo: 0, Hi: 5000}

	out, err := Apply(wells, c)
	require.NoError(t, err)
	assert.NotContains(t, names(out), "w03")
	assert.NotContains(t, names(out), "w04")
	assert.NotContains(t, names(out), "w05")
	assert.Len(t, out, 7)
}

func TestApply_SetMembership(t *testing.T) {
	wells := tenWells()
	wells[1].SubPlay = model.SubPlayKarnesTrough
	wells[2].FluidType = model.FluidNull

	c := openCriteria()
	c.SubPlays = []model.SubPlay{model.SubPlayBlackOil}
	c.FluidTypes = model.FluidTypes()

	out, err := Apply(wells, c)
	require.NoError(t, err)
	assert.NotContains(t, names(out), "w01")
	assert.NotContains(t, names(out), "w02")
	assert.Len(t, out, 8)

	c.SubPlays = nil
	out, err = Apply(wells, c)
	require.NoError(t, err)
	assert.Empty(t, out, "an empty sub-play set keeps nothing")
}

func TestApply_ConcentrationRanges(t *testing.T) {
	wells := tenWells()
	// 12,000,000 gal / 6000 ft = 2000 gal/ft; 9,000,000 lb / 6000 ft = 1500 lb/ft.
	c := openCriteria()
	c.FracFluidConcentration = &model.FloatRange{Lo: 0, Hi: 2000}
	out, err := Apply(wells, c)
	require.NoError(t, err)
	assert.Empty(t, out)

	c.FracFluidConcentration = &model.FloatRange{Lo: 1999, Hi: 2001}
	c.ProppantConcentration = &model.FloatRange{Lo: 1500, Hi: 5000}
	out, err = Apply(wells, c)
	require.NoError(t, err)
	assert.Empty(t, out)

	c.ProppantConcentration = &model.FloatRange{Lo: 1499, Hi: 5000}
	out, err = Apply(wells, c)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	wells := tenWells()
	before := names(wells)
	c := openCriteria()
	c.SampleFraction = 0.3
	c.TVD = &model.FloatRange{Lo: 10100, Hi: 20000}

	_, err := Apply(wells, c)
	require.NoError(t, err)
	assert.Equal(t, before, names(wells))
}

func TestApply_InvalidCriteria(t *testing.T) {
	c := openCriteria()
	c.SampleFraction = 1.5

	_, err := Apply(tenWells(), c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
	assert.Contains(t, err.Error(), "SampleFraction")
}

func TestApply_ReproducibleSampling(t *testing.T) {
	wells := make([]model.EnrichedWell, 200)
	for i := range wells {
		wells[i] = testWell(fmt.Sprintf("w%03d", i), 9000, model.NewDate(2015, 1, 1))
	}
	c := openCriteria()
	c.SampleFraction = 0.25

	first, err := Apply(wells, c)
	require.NoError(t, err)
	second, err := Apply(wells, c)
	require.NoError(t, err)

	assert.Len(t, first, 50)
	assert.Equal(t, names(first), names(second))

	other, err := Apply(wells, c, WithSeed(42))
	require.NoError(t, err)
	assert.Len(t, other, 50)
	assert.NotEqual(t, names(first), names(other))
}

func TestApply_SampleKeepsInputOrder(t *testing.T) {
	wells := make([]model.EnrichedWell, 100)
	for i := range wells {
		wells[i] = testWell(fmt.Sprintf("w%03d", i), 9000, model.NewDate(2015, 1, 1))
	}
	c := openCriteria()
	c.SampleFraction = 0.4

	out, err := Apply(wells, c)
	require.NoError(t, err)
	got := names(out)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}
}

func TestSampleSize(t *testing.T) {
	tests := []struct {
		n        int
		fraction float64
		want     int
	}{
		{0, 0.5, 0},
		{10, 0, 0},
		{10, 1, 10},
		{10, 0.25, 2},
		{10, 0.35, 4},
		{4, 0.625, 2},
		{100, 0.251, 25},
		{10, -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SampleSize(tt.n, tt.fraction), "n=%d fraction=%v", tt.n, tt.fraction)
	}
}

func TestSampleIndices_Distinct(t *testing.T) {
	idx := SampleIndices(1000, 0.1, DefaultSeed)
	require.Len(t, idx, 100)
	seen := make(map[int]bool)
	for _, i := range idx {
		assert.False(t, seen[i])
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 1000)
		seen[i] = true
	}
}

func TestRun_BundlesOperatorView(t *testing.T) {
	wells := tenWells()
	wells[0].OperatorName = "Marathon"

	res, err := Run(wells, openCriteria(), TopOperatorOptions{N: 1})
	require.NoError(t, err)
	assert.Len(t, res.Wells, 10)
	assert.Equal(t, []string{"EOG Resources"}, res.Operators.Names())
	assert.Len(t, res.Operators.Wells, 9)
}
