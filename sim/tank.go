package sim

import (
	"fmt"
	"math"
)

// TankID indexes the five tanks of a FuelSystem.
type TankID int

const (
	TankCenter TankID = iota
	TankLeftInner
	TankLeftOuter
	TankRightInner
	TankRightOuter

	numTanks = 5
)

var tankNames = [numTanks]string{
	TankCenter:     "center",
	TankLeftInner:  "left_inner",
	TankLeftOuter:  "left_outer",
	TankRightInner: "right_inner",
	TankRightOuter: "right_outer",
}

func (id TankID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return tankNames[id]
}

// ParseTankID maps a tank name ("center", "left_inner", ...) to its TankID.
func ParseTankID(name string) (TankID, error) {
	for i, n := range tankNames {
		if n == name {
			return TankID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tank %q; valid: center, left_inner, left_outer, right_inner, right_outer", name)
}

// Valid reports whether id names one of the five tanks.
func (id TankID) Valid() bool {
	return id >= 0 && id < numTanks
}

// Side groups tanks for crossfeed: -1 left, +1 right, 0 center.
func (id TankID) Side() int {
	switch id {
	case TankLeftInner, TankLeftOuter:
		return -1
	case TankRightInner, TankRightOuter:
		return 1
	default:
		return 0
	}
}

// Tank holds a bounded fuel volume. 0 <= CurrentVolume <= Capacity holds after every mutation.
type Tank struct {
	Capacity      float64
	CurrentVolume float64
}

// NewTank returns an empty tank of the given capacity (liters).
func NewTank(capacity float64) Tank {
	return Tank{Capacity: capacity}
}

// AddFuel adds volume, clamping at capacity. Returns the volume actually added, which is
// less than requested when the tank fills. Non-positive or NaN volumes add nothing.
func (t *Tank) AddFuel(volume float64) float64 {
	if !(volume > 0) {
		return 0
	}
	before := t.CurrentVolume
	t.CurrentVolume += volume
	if t.CurrentVolume > t.Capacity {
		t.CurrentVolume = t.Capacity
	}
	return t.CurrentVolume - before
}

// RemoveFuel removes volume, clamping at zero. Returns the volume actually removed, which is
// less than requested when the tank runs dry. Non-positive or NaN volumes remove nothing.
func (t *Tank) RemoveFuel(volume float64) float64 {
	if !(volume > 0) {
		return 0
	}
	before := t.CurrentVolume
	t.CurrentVolume -= volume
	if t.CurrentVolume < 0 {
		t.CurrentVolume = 0
	}
	return before - t.CurrentVolume
}

// FreeCapacity is the volume the tank can still take.
func (t *Tank) FreeCapacity() float64 {
	return math.Max(t.Capacity-t.CurrentVolume, 0)
}

func (t *Tank) IsFull() bool  { return t.CurrentVolume >= t.Capacity }
func (t *Tank) IsEmpty() bool { return t.CurrentVolume <= 0 }
