package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wellplay/internal/model"
)

// Shapefile attribute layout. DBF field names are limited to 10 characters.
var shapeFields = []shp.Field{
	shp.StringField("NAME", 80),
	shp.StringField("API", 20),
	shp.StringField("OPERATOR", 80),
	shp.StringField("SUBPLAY", 40),
	shp.StringField("FLUID", 20),
	shp.StringField("DRILLED", 10),
	shp.FloatField("TVD_FT", 12, 1),
	shp.FloatField("EUR_MBOE", 14, 3),
	shp.FloatField("GOR", 12, 1),
}

const (
	fieldName = iota
	fieldAPI
	fieldOperator
	fieldSubPlay
	fieldFluid
	fieldDrilled
	fieldTVD
	fieldEUR
	fieldGOR
)

// WriteShapefile writes wells with coordinates as WGS84 points and returns
// how many were written. Wells without coordinates are skipped.
func WriteShapefile(path string, wells []model.EnrichedWell) (int, error) {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return 0, eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	if err := w.SetFields(shapeFields); err != nil {
		return 0, eris.Wrap(err, "export: set shapefile fields")
	}

	var written, skipped int
	for _, well := range wells {
		if well.LongitudeDeg == nil || well.LatitudeDeg == nil {
			skipped++
			continue
		}
		idx := int(w.Write(&shp.Point{X: *well.LongitudeDeg, Y: *well.LatitudeDeg}))

		attrs := map[int]any{
			fieldName:     well.Name,
			fieldAPI:      well.APINumber,
			fieldOperator: well.OperatorName,
			fieldSubPlay:  string(well.SubPlay),
			fieldFluid:    string(well.FluidType),
			fieldDrilled:  formatDate(well.DrillingStartDate),
		}
		for field, v := range map[int]*float64{
			fieldTVD: well.TrueVerticalDepthFt,
			fieldEUR: well.EURTotalMBOE,
			fieldGOR: well.GasOilRatio,
		} {
			if v != nil {
				attrs[field] = *v
			}
		}
		for field, v := range attrs {
			if err := w.WriteAttribute(idx, field, v); err != nil {
				return written, eris.Wrapf(err, "export: write attribute %d of %s", field, well.Name)
			}
		}
		written++
	}

	if skipped > 0 {
		zap.L().Debug("export: skipped wells without coordinates",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return written, nil
}
