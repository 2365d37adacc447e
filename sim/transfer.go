package sim

import (
	"fmt"
	"math"
)

// TransferPolicy decides how much fuel an active pump requests during one update.
// Implementations must return a non-negative volume.
type TransferPolicy interface {
	FlowVolume(pump int, deltaTime float64) float64
}

// NoTransfer requests nothing, which makes FuelSystem.Update a no-op. It is the default
// because no pump flow rate is defined for this aircraft.
type NoTransfer struct{}

func (NoTransfer) FlowVolume(int, float64) float64 { return 0 }

// ConstantFlow requests Rate liters per second from every active pump.
type ConstantFlow struct {
	Rate float64
}

func (c ConstantFlow) FlowVolume(_ int, deltaTime float64) float64 {
	return c.Rate * deltaTime
}

// NewTransferPolicy returns NoTransfer for a zero rate and ConstantFlow otherwise.
func NewTransferPolicy(rate float64) (TransferPolicy, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return nil, fmt.Errorf("transfer rate must be a finite non-negative number, got %f", rate)
	}
	if rate == 0 {
		return NoTransfer{}, nil
	}
	return ConstantFlow{Rate: rate}, nil
}
