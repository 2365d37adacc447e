package sim

import (
	"fmt"
	"math"
)

// Control ranges accepted by the Burn Model.
const (
	MinLevel    = 0.0
	MaxLevel    = 1.0
	MinAltitude = 0.0
	MaxAltitude = ServiceCeiling
	MinPayload  = 0.0
	MaxPayloadT = MTOW // tonnes
)

// Controls are the engine and flight parameters set by the control surface.
type Controls struct {
	N1Level  float64 // normalized, [0, 1]
	N2Level  float64 // normalized, [0, 1]
	Altitude float64 // feet, [0, 40000]
	Payload  float64 // tonnes, [0, 319]
}

// Clamp returns a copy of c with every field forced into its range. NaN clamps to the lower bound.
func (c Controls) Clamp() Controls {
	return Controls{
		N1Level:  clamp(c.N1Level, MinLevel, MaxLevel),
		N2Level:  clamp(c.N2Level, MinLevel, MaxLevel),
		Altitude: clamp(c.Altitude, MinAltitude, MaxAltitude),
		Payload:  clamp(c.Payload, MinPayload, MaxPayloadT),
	}
}

// BurnRate evaluates the Burn Model for these controls.
func (c Controls) BurnRate() float64 {
	return CalculateFuelBurn(c.N1Level, c.N2Level, c.Altitude, c.Payload)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SimulationState is the aggregate model driven by the control surface.
// Volumes are liters. Distribution floors volumes at zero but never clamps them to capacity;
// burning only removes fuel, so Validate checks the ceiling once at construction.
type SimulationState struct {
	Controls

	CenterTankVolume    float64
	LeftWingTankVolume  float64
	RightWingTankVolume float64

	TimeElapsed  float64 // seconds since start, +1.0 per Step
	FuelBurnRate float64 // rate computed by the latest Step
}

// NewSimulationState returns the standard starting point: half thrust at 10000 ft, no payload
// and full aggregate tanks.
func NewSimulationState() *SimulationState {
	return &SimulationState{
		Controls: Controls{
			N1Level:  0.5,
			N2Level:  0.5,
			Altitude: 10000,
			Payload:  0,
		},
		CenterTankVolume:    CenterTankCapacity,
		LeftWingTankVolume:  WingTankCapacity,
		RightWingTankVolume: WingTankCapacity,
	}
}

// Validate checks the tank volumes against [0, capacity] and the clock against negative values.
func (s *SimulationState) Validate() error {
	if err := validateVolume("center tank volume", s.CenterTankVolume, CenterTankCapacity); err != nil {
		return err
	}
	if err := validateVolume("left wing tank volume", s.LeftWingTankVolume, WingTankCapacity); err != nil {
		return err
	}
	if err := validateVolume("right wing tank volume", s.RightWingTankVolume, WingTankCapacity); err != nil {
		return err
	}
	if math.IsNaN(s.TimeElapsed) || s.TimeElapsed < 0 {
		return fmt.Errorf("time elapsed must be non-negative, got %f", s.TimeElapsed)
	}
	return nil
}

func validateVolume(name string, v, capacity float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, v)
	}
	if v < 0 || v > capacity {
		return fmt.Errorf("%s must be in [0, %.0f], got %f", name, capacity, v)
	}
	return nil
}

// TotalFuel is the sum of the three aggregate tank volumes.
func (s *SimulationState) TotalFuel() float64 {
	return s.CenterTankVolume + s.LeftWingTankVolume + s.RightWingTankVolume
}

// Empty reports whether all three aggregate tanks are at zero.
func (s *SimulationState) Empty() bool {
	return s.CenterTankVolume == 0 && s.LeftWingTankVolume == 0 && s.RightWingTankVolume == 0
}

// Step advances the aggregate model by one second: it computes the burn rate from the current
// controls, stores it, distributes it across the tanks and advances the clock by 1.0.
// Returns the computed burn rate.
func Step(state *SimulationState) float64 {
	rate := state.Controls.BurnRate()
	state.FuelBurnRate = rate
	SimulateFuelBurn(state, rate)
	state.TimeElapsed += 1.0
	return rate
}
