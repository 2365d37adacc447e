package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControls_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   Controls
		want Controls
	}{
		{"in range unchanged", Controls{0.5, 0.7, 12000, 100}, Controls{0.5, 0.7, 12000, 100}},
		{"below range", Controls{-1, -0.1, -500, -3}, Controls{0, 0, 0, 0}},
		{"above range", Controls{1.5, 2, 45000, 400}, Controls{1, 1, 40000, 319}},
		{"NaN to lower bound", Controls{math.NaN(), math.NaN(), math.NaN(), math.NaN()}, Controls{0, 0, 0, 0}},
		{"infinities", Controls{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(1)}, Controls{1, 0, 40000, 319}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestNewSimulationState_StandardStart(t *testing.T) {
	s := NewSimulationState()

	assert.Equal(t, Controls{N1Level: 0.5, N2Level: 0.5, Altitude: 10000, Payload: 0}, s.Controls)
	assert.Equal(t, 100000.0, s.CenterTankVolume)
	assert.Equal(t, 56000.0, s.LeftWingTankVolume)
	assert.Equal(t, 56000.0, s.RightWingTankVolume)
	assert.Equal(t, 0.0, s.TimeElapsed)
	assert.Equal(t, 0.0, s.FuelBurnRate)
	require.NoError(t, s.Validate())
}

func TestSimulationState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *SimulationState)
		wantErr string
	}{
		{"negative center", func(s *SimulationState) { s.CenterTankVolume = -1 }, "center tank volume"},
		{"overfull left", func(s *SimulationState) { s.LeftWingTankVolume = 56001 }, "left wing tank volume"},
		{"NaN right", func(s *SimulationState) { s.RightWingTankVolume = math.NaN() }, "right wing tank volume"},
		{"negative clock", func(s *SimulationState) { s.TimeElapsed = -1 }, "time elapsed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSimulationState()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStep_EndToEnd(t *testing.T) {
	// GIVEN the standard starting state
	s := NewSimulationState()

	// WHEN one step runs
	rate := Step(s)

	// THEN rate, volumes and clock match the hand-computed values
	assert.Equal(t, 0.375, rate)
	assert.Equal(t, 0.375, s.FuelBurnRate)
	assert.Equal(t, 99999.8125, s.CenterTankVolume)
	assert.Equal(t, 55999.90625, s.LeftWingTankVolume)
	assert.Equal(t, 55999.90625, s.RightWingTankVolume)
	assert.Equal(t, 1.0, s.TimeElapsed)
}

func TestStep_ClockAdvancesByOne(t *testing.T) {
	s := &SimulationState{}
	for i := 1; i <= 25; i++ {
		Step(s)
		assert.Equal(t, float64(i), s.TimeElapsed)
	}
	assert.True(t, s.Empty())
}

func TestSimulationState_TotalFuel(t *testing.T) {
	assert.Equal(t, 212000.0, NewSimulationState().TotalFuel())
}
