// Package trace provides step and transfer recording for fuel simulation runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// StepRecord captures the aggregate model after one simulated second.
type StepRecord struct {
	Time     float64 // TimeElapsed after the step
	N1Level  float64
	N2Level  float64
	Altitude float64
	Payload  float64
	BurnRate float64
	Burned   float64 // fuel actually removed; below BurnRate once tanks run dry
	Center   float64
	Left     float64
	Right    float64
}

// TransferRecord captures one pump's movement during a FuelSystem update.
type TransferRecord struct {
	Time      float64
	Pump      int
	Source    string
	Target    string
	Requested float64
	Applied   float64
	State     string // pump state after the update
}

// Partial reports whether the transfer was cut short by an empty source or a full target.
func (r TransferRecord) Partial() bool {
	return r.Applied < r.Requested
}

// FaultRecord captures a pump entering the fault state.
type FaultRecord struct {
	Time float64
	Pump int
}
