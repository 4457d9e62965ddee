package model

// FluidType classifies the reservoir fluid of a well from its gas-oil ratio.
type FluidType string

const (
	FluidBlackOil      FluidType = "Black Oil"
	FluidVolatileOil   FluidType = "Volatile Oil"
	FluidGasCondensate FluidType = "Gas Condensate"
	FluidGas           FluidType = "Gas"
	FluidNull          FluidType = "Null"
)

// GOR band limits in scf/bbl. Each band is inclusive of its upper limit.
const (
	BlackOilMaxGOR      = 2500.0
	VolatileOilMaxGOR   = 5000.0
	GasCondensateMaxGOR = 100000.0

	// MaxGOR is the clamp applied to every computed gas-oil ratio.
	MaxGOR = 200000.0
)

// FluidTypes lists the classifiable fluid types, lightest band first. Null is
// not included.
func FluidTypes() []FluidType {
	return []FluidType{FluidBlackOil, FluidVolatileOil, FluidGasCondensate, FluidGas}
}

// AllFluidTypes lists every fluid type including Null.
func AllFluidTypes() []FluidType {
	return append(FluidTypes(), FluidNull)
}
