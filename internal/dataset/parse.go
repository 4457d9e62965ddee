package dataset

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/wellplay/internal/model"
)

// FieldError records a cell that could not be parsed. The affected field is
// left nil and the row is kept.
type FieldError struct {
	Line   int    `json:"line"`
	Column Column `json:"column"`
	Value  string `json:"value"`
	Err    string `json:"error"`
}

// nullTokens are cell values treated as missing.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"-":    true,
}

func isNull(s string) bool {
	return nullTokens[strings.ToLower(s)]
}

// ParseFloat parses a numeric cell, tolerating thousands separators, a
// leading dollar sign and surrounding whitespace. Null tokens yield nil, nil.
func ParseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return nil, nil
	}
	clean := strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, eris.Errorf("dataset: not a number: %q", s)
	}
	return &v, nil
}

// ParseRow maps one source row onto a WellRecord. It never fails: a missing
// column or null cell leaves the field nil, and an unparsable cell leaves it
// nil and is reported in the returned errors.
func ParseRow(h Header, row []string, line int) (model.WellRecord, []FieldError) {
	var (
		rec  model.WellRecord
		errs []FieldError
	)

	str := func(col Column) string {
		v, _ := h.cell(row, col)
		if isNull(v) {
			return ""
		}
		return v
	}
	num := func(col Column) *float64 {
		v, ok := h.cell(row, col)
		if !ok {
			return nil
		}
		f, err := ParseFloat(v)
		if err != nil {
			errs = append(errs, FieldError{Line: line, Column: col, Value: v, Err: err.Error()})
			return nil
		}
		return f
	}

	rec.Name = str(ColName)
	rec.APINumber = str(ColAPINumber)
	rec.OperatorName = str(ColOperator)
	rec.SubPlay = model.SubPlay(str(ColSubPlay))

	rec.LongitudeDeg = num(ColLongitude)
	rec.LatitudeDeg = num(ColLatitude)
	rec.TrueVerticalDepthFt = num(ColTVD)

	if v, ok := h.cell(row, ColDrillDate); ok && !isNull(v) {
		d, err := model.ParseDate(v)
		if err != nil {
			errs = append(errs, FieldError{Line: line, Column: ColDrillDate, Value: v, Err: err.Error()})
		} else {
			rec.DrillingStartDate = &d
		}
	}

	rec.LateralLengthFt = num(ColLateralLength)
	rec.FractureFluidVolumeGal = num(ColFracFluid)
	rec.ProppantWeightLbs = num(ColProppant)
	rec.TotalCostUSD = num(ColTotalCost)

	rec.Cum30OilBbl = num(ColCum30Oil)
	rec.Cum30GasMcf = num(ColCum30Gas)
	rec.Cum90TotalBOE = num(ColCum90Total)
	rec.EURTotalMBOE = num(ColEURTotal)
	rec.EUROilMBbl = num(ColEUROil)
	rec.EURGasBscf = num(ColEURGas)

	return rec, errs
}
