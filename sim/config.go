package sim

import (
	"fmt"
	"math"

	"github.com/fuel-sim/fuel-sim/sim/trace"
)

// Phase is a run of consecutive steps under fixed controls.
type Phase struct {
	Name     string
	Controls Controls
	Steps    int
}

// NetworkConfig groups granular FuelSystem parameters. A nil NetworkConfig in SimConfig
// runs the aggregate model alone.
type NetworkConfig struct {
	InitialVolumes map[TankID]float64 // liters per tank; missing tanks start empty
	ActivePumps    []int              // pump indices switched on at start
	CrossfeedOpen  bool
	TransferRate   float64 // liters/second per active pump; 0 = no transfer
}

// FaultConfig groups fault injection parameters.
type FaultConfig struct {
	Seed          int64
	PumpFaultProb float64 // per pump, per step, [0, 1]
}

// SimConfig groups everything NewSimulator needs besides the initial state.
type SimConfig struct {
	Phases  []Phase
	Network *NetworkConfig
	Faults  FaultConfig
	Trace   trace.TraceConfig
}

// Validate checks phase lengths, pump indices, rates and probabilities.
func (c *SimConfig) Validate() error {
	for i, ph := range c.Phases {
		if ph.Steps < 0 {
			return fmt.Errorf("phase[%d]: steps must be non-negative, got %d", i, ph.Steps)
		}
	}
	if p := c.Faults.PumpFaultProb; math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("pump fault probability must be in [0, 1], got %f", p)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q; valid: none, steps, transfers", c.Trace.Level)
	}
	if c.Network == nil {
		return nil
	}
	return c.Network.Validate()
}

// Validate checks pump indices, tank ids, initial volumes and the transfer rate.
func (nc *NetworkConfig) Validate() error {
	for _, idx := range nc.ActivePumps {
		if idx < 0 || idx >= NumPumps {
			return fmt.Errorf("active pump index %d out of range [0, %d)", idx, NumPumps)
		}
	}
	for id, v := range nc.InitialVolumes {
		if !id.Valid() {
			return fmt.Errorf("unknown tank id %d", id)
		}
		if math.IsNaN(v) || v < 0 {
			return fmt.Errorf("initial volume of %s must be non-negative, got %f", id, v)
		}
	}
	if _, err := NewTransferPolicy(nc.TransferRate); err != nil {
		return err
	}
	return nil
}

// TotalSteps is the sum of all phase lengths.
func (c *SimConfig) TotalSteps() int {
	total := 0
	for _, ph := range c.Phases {
		total += ph.Steps
	}
	return total
}

// BuildFuelSystem validates nc, then constructs and fills a FuelSystem from it. Volumes above a
// tank's capacity are clamped and logged by the caller through the returned overflow.
func (nc *NetworkConfig) BuildFuelSystem() (fs *FuelSystem, overflow float64, err error) {
	if err := nc.Validate(); err != nil {
		return nil, 0, err
	}
	policy, err := NewTransferPolicy(nc.TransferRate)
	if err != nil {
		return nil, 0, err
	}
	fs = NewFuelSystem()
	fs.SetTransferPolicy(policy)
	for id, v := range nc.InitialVolumes {
		overflow += v - fs.Fill(id, v)
	}
	for _, idx := range nc.ActivePumps {
		fs.Pump(idx).Activate()
	}
	if nc.CrossfeedOpen {
		fs.Valve().Open()
	}
	return fs, overflow, nil
}
