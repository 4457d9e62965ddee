package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/wellplay/internal/model"
)

// SheetName is the worksheet WriteXLSX creates.
const SheetName = "Wells"

// WriteXLSX writes wells to a single-sheet workbook. Numeric fields are
// written as number cells; missing values leave the cell empty.
func WriteXLSX(path string, wells []model.EnrichedWell) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range Header {
		header.AddCell().SetString(h)
	}

	for _, w := range wells {
		row := sheet.AddRow()
		addString(row, w.Name)
		addString(row, w.APINumber)
		addString(row, w.OperatorName)
		addString(row, string(w.SubPlay))
		addFloat(row, w.LongitudeDeg)
		addFloat(row, w.LatitudeDeg)
		addFloat(row, w.TrueVerticalDepthFt)
		addString(row, formatDate(w.DrillingStartDate))
		addFloat(row, w.LateralLengthFt)
		addFloat(row, w.FractureFluidVolumeGal)
		addFloat(row, w.ProppantWeightLbs)
		addFloat(row, w.TotalCostUSD)
		addFloat(row, w.Cum30OilBbl)
		addFloat(row, w.Cum30GasMcf)
		addFloat(row, w.Cum90TotalBOE)
		addFloat(row, w.EURTotalMBOE)
		addFloat(row, w.EUROilMBbl)
		addFloat(row, w.EURGasBscf)
		addFloat(row, w.NormFractureFluid)
		addFloat(row, w.NormProppant)
		addFloat(row, w.NormTotalCost)
		addFloat(row, w.GasOilRatio)
		addString(row, string(w.FluidType))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

func addString(row *xlsx.Row, s string) {
	row.AddCell().SetString(s)
}

func addFloat(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v != nil {
		cell.SetFloat(*v)
	}
}
