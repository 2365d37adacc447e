package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaultInjector_CertainFailureHitsActivePumpsOnly(t *testing.T) {
	fs := NewFuelSystem()
	fs.Pump(1).Activate()
	fs.Pump(3).Activate()

	failed := NewFaultInjector(NewSimulationKey(42), 1.0).Inject(fs)

	assert.Equal(t, []int{1, 3}, failed)
	assert.Equal(t, PumpFault, fs.Pump(1).State())
	assert.Equal(t, PumpFault, fs.Pump(3).State())
	assert.Equal(t, PumpIdle, fs.Pump(0).State())
}

func TestFaultInjector_ZeroProbabilityNeverFails(t *testing.T) {
	fs := NewFuelSystem()
	for i := 0; i < NumPumps; i++ {
		fs.Pump(i).Activate()
	}
	inj := NewFaultInjector(NewSimulationKey(7), 0)

	for step := 0; step < 1000; step++ {
		assert.Empty(t, inj.Inject(fs))
	}
}

func TestFaultInjector_NilIsSafe(t *testing.T) {
	var inj *FaultInjector
	assert.Nil(t, inj.Inject(NewFuelSystem()))
}

func TestFaultInjector_SameSeedSameFaults(t *testing.T) {
	run := func() [][]int {
		fs := NewFuelSystem()
		for i := 0; i < NumPumps; i++ {
			fs.Pump(i).Activate()
		}
		inj := NewFaultInjector(NewSimulationKey(2024), 0.05)
		var history [][]int
		for step := 0; step < 200; step++ {
			history = append(history, inj.Inject(fs))
			// Reset and re-activate so every pump keeps drawing.
			for i := 0; i < NumPumps; i++ {
				fs.Pump(i).Reset()
				fs.Pump(i).Activate()
			}
		}
		return history
	}

	assert.Equal(t, run(), run())
}

func TestFaultInjector_Key(t *testing.T) {
	inj := NewFaultInjector(NewSimulationKey(2024), 0.1)

	assert.Equal(t, SimulationKey(2024), inj.Key())
}
