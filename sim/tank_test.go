package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTank_StartsEmpty(t *testing.T) {
	tank := NewTank(100)
	assert.Equal(t, 100.0, tank.Capacity)
	assert.Equal(t, 0.0, tank.CurrentVolume)
	assert.True(t, tank.IsEmpty())
	assert.False(t, tank.IsFull())
}

func TestTank_AddThenRemove_Clamps(t *testing.T) {
	// GIVEN a 100 L tank
	tank := NewTank(100.0)

	// WHEN 150 L is added
	added := tank.AddFuel(150.0)

	// THEN it holds exactly its capacity and reports 100 L added
	assert.Equal(t, 100.0, tank.CurrentVolume)
	assert.Equal(t, 100.0, added)
	assert.True(t, tank.IsFull())

	// WHEN 200 L is removed
	removed := tank.RemoveFuel(200.0)

	// THEN it is empty and reports 100 L removed
	assert.Equal(t, 0.0, tank.CurrentVolume)
	assert.Equal(t, 100.0, removed)
}

func TestTank_FullTransferReportsRequested(t *testing.T) {
	tank := NewTank(100)

	assert.Equal(t, 40.0, tank.AddFuel(40))
	assert.Equal(t, 15.0, tank.RemoveFuel(15))
	assert.Equal(t, 25.0, tank.CurrentVolume)
	assert.Equal(t, 75.0, tank.FreeCapacity())
}

func TestTank_NonPositiveVolumesAreIgnored(t *testing.T) {
	tank := NewTank(100)
	tank.AddFuel(50)

	for _, v := range []float64{0, -10, math.NaN()} {
		assert.Equal(t, 0.0, tank.AddFuel(v))
		assert.Equal(t, 0.0, tank.RemoveFuel(v))
	}
	assert.Equal(t, 50.0, tank.CurrentVolume)
}

func TestTank_InvariantHoldsUnderRandomOps(t *testing.T) {
	tank := NewTank(5000)
	ops := []float64{1200, -300, 4000, -9000, 2500.5, 2500.5, -1, 10000, -4999.9}
	for _, v := range ops {
		if v >= 0 {
			tank.AddFuel(v)
		} else {
			tank.RemoveFuel(-v)
		}
		if tank.CurrentVolume < 0 || tank.CurrentVolume > tank.Capacity {
			t.Fatalf("after op %v volume %v outside [0, %v]", v, tank.CurrentVolume, tank.Capacity)
		}
	}
}

func TestTankID_StringAndSide(t *testing.T) {
	tests := []struct {
		id   TankID
		name string
		side int
	}{
		{TankCenter, "center", 0},
		{TankLeftInner, "left_inner", -1},
		{TankLeftOuter, "left_outer", -1},
		{TankRightInner, "right_inner", 1},
		{TankRightOuter, "right_outer", 1},
		{TankID(7), "unknown", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.id.String())
		assert.Equal(t, tt.side, tt.id.Side())
	}
}

func TestParseTankID(t *testing.T) {
	for i := TankID(0); i < numTanks; i++ {
		got, err := ParseTankID(i.String())
		assert.NoError(t, err)
		assert.Equal(t, i, got)
	}
	_, err := ParseTankID("aft_trim")
	assert.Error(t, err)
}
