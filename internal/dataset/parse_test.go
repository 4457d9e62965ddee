package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/wellplay/internal/model"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		null    bool
		wantErr bool
	}{
		{in: "123.5", want: 123.5},
		{in: " 7 ", want: 7},
		{in: "1,250,000", want: 1250000},
		{in: "$9,800,000", want: 9800000},
		{in: "-97.25", want: -97.25},
		{in: "", null: true},
		{in: "NA", null: true},
		{in: "n/a", null: true},
		{in: "NaN", null: true},
		{in: "null", null: true},
		{in: "-", null: true},
		{in: "abc", wantErr: true},
		{in: "12ft", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFloat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if tt.null {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestParseHeader(t *testing.T) {
	h := ParseHeader([]string{"NAME", "junk", " operator_name ", "tvd_ft", "tvd__ft"})

	assert.Equal(t, 0, h[ColName])
	assert.Equal(t, 2, h[ColOperator])
	assert.Equal(t, 3, h[ColTVD], "first occurrence wins, aliases included")
	assert.Len(t, h, 3)
	assert.Contains(t, h.Missing(), string(ColProppant))
	assert.NotContains(t, h.Missing(), string(ColName))
}

func TestParseRow_AllFields(t *testing.T) {
	cells := make([]string, len(Columns()))
	h := positionalHeader()
	set := func(c Column, v string) { cells[h[c]] = v }

	set(ColName, "Smith 1H")
	set(ColAPINumber, "42-123-45678")
	set(ColOperator, "EOG Resources")
	set(ColSubPlay, "Karnes Trough")
	set(ColLongitude, "-97.9")
	set(ColLatitude, "28.8")
	set(ColTVD, "9,500")
	set(ColDrillDate, "2018-03-14T00:00:00")
	set(ColLateralLength, "10000")
	set(ColFracFluid, "20000000")
	set(ColProppant, "15000000")
	set(ColTotalCost, "8500000")
	set(ColCum30Oil, "30000")
	set(ColCum30Gas, "45000")
	set(ColCum90Total, "80000")
	set(ColEURTotal, "650")
	set(ColEUROil, "450")
	set(ColEURGas, "1.2")

	rec, errs := ParseRow(h, cells, 2)
	require.Empty(t, errs)

	assert.Equal(t, "Smith 1H", rec.Name)
	assert.Equal(t, model.SubPlayKarnesTrough, rec.SubPlay)
	assert.Equal(t, model.NewDate(2018, 3, 14), *rec.DrillingStartDate)
	assert.InDelta(t, 9500, *rec.TrueVerticalDepthFt, 1e-9)
	assert.InDelta(t, 1.2, *rec.EURGasBscf, 1e-9)
	assert.InDelta(t, -97.9, *rec.LongitudeDeg, 1e-9)
}

func TestParseRow_BadCellsAreIsolated(t *testing.T) {
	h := ParseHeader([]string{"Name", "tvd__ft", "drilling_start_date", "cum30_oil__bl"})

	rec, errs := ParseRow(h, []string{"W-9", "deep", "yesterday", "1200"}, 7)

	assert.Equal(t, "W-9", rec.Name)
	assert.Nil(t, rec.TrueVerticalDepthFt)
	assert.Nil(t, rec.DrillingStartDate)
	require.NotNil(t, rec.Cum30OilBbl)
	assert.InDelta(t, 1200, *rec.Cum30OilBbl, 1e-9)

	require.Len(t, errs, 2)
	assert.Equal(t, 7, errs[0].Line)
	assert.Equal(t, ColTVD, errs[0].Column)
	assert.Equal(t, "deep", errs[0].Value)
	assert.Equal(t, ColDrillDate, errs[1].Column)
}

func TestParseRow_ShortRowAndNulls(t *testing.T) {
	h := ParseHeader([]string{"Name", "operator_name", "lateral_length__ft", "proppant__lbs"})

	rec, errs := ParseRow(h, []string{"W-1", "NULL"}, 3)

	assert.Empty(t, errs)
	assert.Equal(t, "W-1", rec.Name)
	assert.Empty(t, rec.OperatorName)
	assert.Nil(t, rec.LateralLengthFt)
	assert.Nil(t, rec.ProppantWeightLbs)
}
