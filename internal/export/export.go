// Package export writes enriched wells as JSON, CSV, XLSX, point shapefiles
// or into a PostGIS table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/wellplay/internal/model"
)

// Format is an output format.
type Format string

const (
	FormatJSON      Format = "json"
	FormatCSV       Format = "csv"
	FormatXLSX      Format = "xlsx"
	FormatShapefile Format = "shp"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV, FormatXLSX, FormatShapefile:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", eris.Errorf("export: unknown format %q", s)
	}
}

// Header is the tabular column order. Names match the JSON field names, so
// exported CSV and XLSX files load back through the dataset package.
var Header = []string{
	"name", "api_number", "operator_name", "sub_play_name",
	"longitude_deg", "latitude_deg", "tvd_ft", "drilling_start_date",
	"lateral_length_ft", "fracture_fluid_gal", "proppant_lbs", "total_cost_usd",
	"cum30_oil_bbl", "cum30_gas_mcf", "cum90_total_boe",
	"eur_total_mboe", "eur_oil_mbbl", "eur_gas_bscf",
	"norm_fracture_fluid", "norm_proppant", "norm_total_cost", "gor", "fluid_type",
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDate(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// Row renders w in Header order. Missing values are empty strings.
func Row(w model.EnrichedWell) []string {
	return []string{
		w.Name, w.APINumber, w.OperatorName, string(w.SubPlay),
		formatFloat(w.LongitudeDeg), formatFloat(w.LatitudeDeg), formatFloat(w.TrueVerticalDepthFt), formatDate(w.DrillingStartDate),
		formatFloat(w.LateralLengthFt), formatFloat(w.FractureFluidVolumeGal), formatFloat(w.ProppantWeightLbs), formatFloat(w.TotalCostUSD),
		formatFloat(w.Cum30OilBbl), formatFloat(w.Cum30GasMcf), formatFloat(w.Cum90TotalBOE),
		formatFloat(w.EURTotalMBOE), formatFloat(w.EUROilMBbl), formatFloat(w.EURGasBscf),
		formatFloat(w.NormFractureFluid), formatFloat(w.NormProppant), formatFloat(w.NormTotalCost), formatFloat(w.GasOilRatio), string(w.FluidType),
	}
}

// Write streams wells to w as JSON or CSV.
func Write(w io.Writer, format Format, wells []model.EnrichedWell) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, wells)
	case FormatCSV:
		return WriteCSV(w, wells)
	default:
		return eris.Errorf("export: format %q needs a file path", format)
	}
}

// WriteJSON writes wells as an indented JSON array.
func WriteJSON(w io.Writer, wells []model.EnrichedWell) error {
	if wells == nil {
		wells = []model.EnrichedWell{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wells); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

// WriteCSV writes a header row and one row per well.
func WriteCSV(w io.Writer, wells []model.EnrichedWell) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, well := range wells {
		if err := cw.Write(Row(well)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteFile writes wells to path in format. A shapefile path names the .shp
// file; its .shx and .dbf siblings are written next to it.
func WriteFile(path string, format Format, wells []model.EnrichedWell) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(path, wells)
	case FormatShapefile:
		_, err := WriteShapefile(path, wells)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	if err := Write(f, format, wells); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrap(f.Close(), "export: close file")
}
