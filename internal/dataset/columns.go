// Package dataset loads raw well records from tabular sources: delimited text,
// XLSX workbooks (optionally zipped, local or remote) and SQL tables.
package dataset

import (
	"strings"
)

// Column identifies a WellRecord field in a source table.
type Column string

const (
	ColName          Column = "Name"
	ColAPINumber     Column = "api_number"
	ColOperator      Column = "operator_name"
	ColSubPlay       Column = "sub_play_name"
	ColLongitude     Column = "tophole_longitude__deg"
	ColLatitude      Column = "tophole_latitude__deg"
	ColTVD           Column = "tvd__ft"
	ColDrillDate     Column = "drilling_start_date"
	ColLateralLength Column = "lateral_length__ft"
	ColFracFluid     Column = "fracture_fluid__ugl"
	ColProppant      Column = "proppant__lbs"
	ColTotalCost     Column = "total_cost__ud"
	ColCum30Oil      Column = "cum30_oil__bl"
	ColCum30Gas      Column = "cum30_gas__mcf"
	ColCum90Total    Column = "cum90_total__be"
	ColEURTotal      Column = "eur_total__mbe"
	ColEUROil        Column = "eur_oil__mbl"
	ColEURGas        Column = "eur_gas__bf3"
)

// Columns lists every recognized column in source order.
func Columns() []Column {
	return []Column{
		ColName, ColAPINumber, ColOperator, ColSubPlay,
		ColLongitude, ColLatitude, ColTVD, ColDrillDate,
		ColLateralLength, ColFracFluid, ColProppant, ColTotalCost,
		ColCum30Oil, ColCum30Gas, ColCum90Total,
		ColEURTotal, ColEUROil, ColEURGas,
	}
}

// aliases maps alternative headers onto columns. The export package writes
// the JSON field names, so those are accepted too.
var aliases = map[string]Column{
	"well_name":          ColName,
	"api":                ColAPINumber,
	"operator":           ColOperator,
	"sub_play":           ColSubPlay,
	"longitude_deg":      ColLongitude,
	"latitude_deg":       ColLatitude,
	"tvd_ft":             ColTVD,
	"lateral_length_ft":  ColLateralLength,
	"fracture_fluid_gal": ColFracFluid,
	"proppant_lbs":       ColProppant,
	"total_cost_usd":     ColTotalCost,
	"cum30_oil_bbl":      ColCum30Oil,
	"cum30_gas_mcf":      ColCum30Gas,
	"cum90_total_boe":    ColCum90Total,
	"eur_total_mboe":     ColEURTotal,
	"eur_oil_mbbl":       ColEUROil,
	"eur_gas_bscf":       ColEURGas,
}

// Header maps recognized columns to their position in a source row.
type Header map[Column]int

// ParseHeader matches header cells to columns case-insensitively. The first
// occurrence of a column wins; unrecognized cells are ignored.
func ParseHeader(cells []string) Header {
	byKey := make(map[string]Column, len(Columns()))
	for _, c := range Columns() {
		byKey[strings.ToLower(string(c))] = c
	}

	h := make(Header)
	for i, cell := range cells {
		key := strings.ToLower(strings.TrimSpace(cell))
		col, ok := byKey[key]
		if !ok {
			col, ok = aliases[key]
		}
		if !ok {
			continue
		}
		if _, seen := h[col]; !seen {
			h[col] = i
		}
	}
	return h
}

// Missing returns the recognized columns absent from h.
func (h Header) Missing() []string {
	var out []string
	for _, c := range Columns() {
		if _, ok := h[c]; !ok {
			out = append(out, string(c))
		}
	}
	return out
}

// cell returns the trimmed value of col in row, and false when the column is
// absent from the header or the row is too short.
func (h Header) cell(row []string, col Column) (string, bool) {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}
