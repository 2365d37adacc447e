package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuel-sim/fuel-sim/sim"
	"github.com/fuel-sim/fuel-sim/sim/trace"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	// GIVEN a two-phase scenario with a network
	path := writeScenario(t, `
seed: 11
initial:
  left: 30000
phases:
  - name: climb
    n1: 0.9
    n2: 0.8
    altitude: 5000
    payload: 100
    steps: 3
  - name: cruise
    n1: 0.5
    n2: 0.5
    altitude: 35000
    steps: 2
network:
  tanks:
    center: 20000
  active_pumps: [0]
  transfer_rate: 4
trace: steps
`)

	// WHEN loaded and converted
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	require.NoError(t, sc.Validate())
	cfg, err := sc.SimConfig()
	require.NoError(t, err)

	// THEN defaults and values are carried through
	assert.Equal(t, "1", sc.Version)
	require.Len(t, cfg.Phases, 2)
	assert.Equal(t, sim.Controls{N1Level: 0.9, N2Level: 0.8, Altitude: 5000, Payload: 100}, cfg.Phases[0].Controls)
	assert.Equal(t, 5, cfg.TotalSteps())
	assert.Equal(t, int64(11), cfg.Faults.Seed)
	assert.Equal(t, trace.TraceLevelSteps, cfg.Trace.Level)
	require.NotNil(t, cfg.Network)
	assert.Equal(t, map[sim.TankID]float64{sim.TankCenter: 20000}, cfg.Network.InitialVolumes)
	assert.Equal(t, 4.0, cfg.Network.TransferRate)

	state := sc.State()
	assert.Equal(t, sim.CenterTankCapacity, state.CenterTankVolume, "missing tanks start full")
	assert.Equal(t, 30000.0, state.LeftWingTankVolume)
}

func TestLoadScenario_UnknownKeyRejected(t *testing.T) {
	path := writeScenario(t, `
phases:
  - name: climb
    n1: 0.9
    stepz: 3
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing scenario")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario")
}

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sc      Scenario
		wantErr string
	}{
		{"no phases", Scenario{Version: "1"}, "at least one phase"},
		{"bad version", Scenario{Version: "2", Phases: []PhaseSpec{{Steps: 1}}}, "unsupported scenario version"},
		{"negative steps", Scenario{Version: "1", Phases: []PhaseSpec{{Steps: -2}}}, "steps must be non-negative"},
		{"bad trace", Scenario{Version: "1", Phases: []PhaseSpec{{Steps: 1}}, Trace: "everything"}, "unknown trace level"},
		{"bad tank", Scenario{Version: "1", Phases: []PhaseSpec{{Steps: 1}}, Network: &NetworkSpec{Tanks: map[string]float64{"aft": 1}}}, "network.tanks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScenario_BundledShortHop(t *testing.T) {
	// GIVEN the bundled scenario
	sc, err := LoadScenario(filepath.Join("..", "scenarios", "short-hop.yaml"))
	require.NoError(t, err)
	require.NoError(t, sc.Validate())
	cfg, err := sc.SimConfig()
	require.NoError(t, err)

	// WHEN it runs to completion
	s, err := sim.NewSimulator(sc.State(), cfg)
	require.NoError(t, err)
	s.Run()

	// THEN the clock covers every phase and no tank went negative
	assert.Equal(t, float64(cfg.TotalSteps()), s.State.TimeElapsed)
	assert.GreaterOrEqual(t, s.State.CenterTankVolume, 0.0)
	assert.Less(t, s.State.TotalFuel(), 60000+2*sim.WingTankCapacity)

	// AND both outer tanks were pumped inboard
	assert.Less(t, s.System.Tank(sim.TankLeftOuter).CurrentVolume, 5000.0)
	assert.Less(t, s.System.Tank(sim.TankRightOuter).CurrentVolume, 5000.0)
	assert.InDelta(t, 40000.0, s.System.TotalFuel(), 1e-6)
}
