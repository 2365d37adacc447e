package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fuel-sim/fuel-sim/sim"
	"github.com/fuel-sim/fuel-sim/sim/trace"
)

// Scenario is a flight profile loaded from YAML.
// Every key must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Version string           `yaml:"version"`
	Seed    int64            `yaml:"seed"`
	Initial InitialSpec      `yaml:"initial"`
	Phases  []PhaseSpec      `yaml:"phases"`
	Network *NetworkSpec     `yaml:"network,omitempty"`
	Faults  FaultSpec        `yaml:"faults,omitempty"`
	Trace   trace.TraceLevel `yaml:"trace,omitempty"`
}

// InitialSpec sets the starting aggregate volumes. Missing tanks start full.
type InitialSpec struct {
	Center *float64 `yaml:"center,omitempty"`
	Left   *float64 `yaml:"left,omitempty"`
	Right  *float64 `yaml:"right,omitempty"`
}

// PhaseSpec is one segment of the profile. Controls are clamped, not rejected.
type PhaseSpec struct {
	Name     string  `yaml:"name"`
	N1       float64 `yaml:"n1"`
	N2       float64 `yaml:"n2"`
	Altitude float64 `yaml:"altitude"`
	Payload  float64 `yaml:"payload"`
	Steps    int     `yaml:"steps"`
}

// NetworkSpec enables the granular fuel system.
type NetworkSpec struct {
	Tanks         map[string]float64 `yaml:"tanks"`
	ActivePumps   []int              `yaml:"active_pumps"`
	CrossfeedOpen bool               `yaml:"crossfeed_open"`
	TransferRate  float64            `yaml:"transfer_rate"`
}

// FaultSpec configures pump fault injection.
type FaultSpec struct {
	PumpFaultProb float64 `yaml:"pump_fault_prob"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if sc.Version == "" {
		sc.Version = "1"
	}
	return &sc, nil
}

// Validate checks the fields that cannot be clamped.
func (sc *Scenario) Validate() error {
	if sc.Version != "1" {
		return fmt.Errorf("unsupported scenario version %q; valid: 1", sc.Version)
	}
	if len(sc.Phases) == 0 {
		return fmt.Errorf("at least one phase required")
	}
	for i, ph := range sc.Phases {
		if ph.Steps < 0 {
			return fmt.Errorf("phases[%d]: steps must be non-negative, got %d", i, ph.Steps)
		}
	}
	if !trace.IsValidTraceLevel(string(sc.Trace)) {
		return fmt.Errorf("unknown trace level %q; valid: none, steps, transfers", sc.Trace)
	}
	if sc.Network != nil {
		for name := range sc.Network.Tanks {
			if _, err := sim.ParseTankID(name); err != nil {
				return fmt.Errorf("network.tanks: %w", err)
			}
		}
	}
	return nil
}

// State builds the initial aggregate state, full tanks unless overridden.
func (sc *Scenario) State() *sim.SimulationState {
	state := sim.NewSimulationState()
	if sc.Initial.Center != nil {
		state.CenterTankVolume = *sc.Initial.Center
	}
	if sc.Initial.Left != nil {
		state.LeftWingTankVolume = *sc.Initial.Left
	}
	if sc.Initial.Right != nil {
		state.RightWingTankVolume = *sc.Initial.Right
	}
	return state
}

// SimConfig converts the scenario into the simulator's configuration.
func (sc *Scenario) SimConfig() (sim.SimConfig, error) {
	cfg := sim.SimConfig{
		Faults: sim.FaultConfig{Seed: sc.Seed, PumpFaultProb: sc.Faults.PumpFaultProb},
		Trace:  trace.TraceConfig{Level: sc.Trace},
	}
	for _, ph := range sc.Phases {
		cfg.Phases = append(cfg.Phases, sim.Phase{
			Name: ph.Name,
			Controls: sim.Controls{
				N1Level:  ph.N1,
				N2Level:  ph.N2,
				Altitude: ph.Altitude,
				Payload:  ph.Payload,
			},
			Steps: ph.Steps,
		})
	}
	if sc.Network != nil {
		nc := &sim.NetworkConfig{
			InitialVolumes: make(map[sim.TankID]float64, len(sc.Network.Tanks)),
			ActivePumps:    sc.Network.ActivePumps,
			CrossfeedOpen:  sc.Network.CrossfeedOpen,
			TransferRate:   sc.Network.TransferRate,
		}
		for name, v := range sc.Network.Tanks {
			id, err := sim.ParseTankID(name)
			if err != nil {
				return sim.SimConfig{}, fmt.Errorf("network.tanks: %w", err)
			}
			nc.InitialVolumes[id] = v
		}
		cfg.Network = nc
	}
	return cfg, nil
}
