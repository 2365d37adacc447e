package sim

// Aircraft and fuel constants used by the Burn Model.
const (
	// MTOW is the maximum takeoff weight in tonnes.
	MTOW = 319.0
	// FuelDensity is kilograms per liter.
	FuelDensity = 0.8
	// ServiceCeiling is the altitude (ft) at which the engine terms of the burn rate reach zero.
	ServiceCeiling = 40000.0

	CenterTankCapacity = 100000.0 // liters, aggregate center tank
	WingTankCapacity   = 56000.0  // liters, each aggregate wing tank

	// MaxPayload is MTOW in kilograms minus the weight of full aggregate tanks.
	// It does not depend on the flight inputs.
	MaxPayload = MTOW*1000 - (CenterTankCapacity*FuelDensity + 2*WingTankCapacity*FuelDensity)
)

// Distribution of the burn rate across the aggregate tanks.
const (
	CenterBurnShare = 0.5
	LeftBurnShare   = 0.25
	RightBurnShare  = 0.25
)

// MaxBurnRate is the burn rate at full N1/N2, sea level and maximum payload.
const MaxBurnRate = 0.5 + 0.5 + (MTOW/MaxPayload)*0.5

// CalculateFuelBurn maps engine and flight parameters to a burn rate in liters per simulated second.
// Inputs are expected pre-clamped (see Controls.Clamp); they are not re-validated here.
//
// Both engine terms scale linearly down to zero at ServiceCeiling. Payload adds a term
// proportional to payload/MaxPayload.
func CalculateFuelBurn(n1Level, n2Level, altitude, payload float64) float64 {
	altitudeFactor := 1 - altitude/ServiceCeiling
	return n1Level*altitudeFactor*0.5 + n2Level*altitudeFactor*0.5 + (payload/MaxPayload)*0.5
}

// BurnShares splits a burn rate into the center, left wing and right wing portions.
func BurnShares(burnRate float64) (center, left, right float64) {
	return burnRate * CenterBurnShare, burnRate * LeftBurnShare, burnRate * RightBurnShare
}

// SimulateFuelBurn removes one second of burn from the three aggregate tanks of state.
// Each volume is floored at zero. TimeElapsed and FuelBurnRate are left to the caller (see Step).
func SimulateFuelBurn(state *SimulationState, burnRate float64) {
	center, left, right := BurnShares(burnRate)

	state.CenterTankVolume = floorZero(state.CenterTankVolume - center)
	state.LeftWingTankVolume = floorZero(state.LeftWingTankVolume - left)
	state.RightWingTankVolume = floorZero(state.RightWingTankVolume - right)
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
