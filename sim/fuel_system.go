package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/fuel-sim/fuel-sim/sim/trace"
)

// Granular tank capacities in liters.
const (
	GranularCenterCapacity = 24000.0
	GranularInnerCapacity  = 15000.0
	GranularOuterCapacity  = 5000.0
)

// NumPumps is the fixed size of the pump pool.
const NumPumps = 5

// defaultPumpLinks is the source → target of each pump, by index.
var defaultPumpLinks = [NumPumps][2]TankID{
	{TankCenter, TankLeftInner},
	{TankCenter, TankRightInner},
	{TankLeftOuter, TankLeftInner},
	{TankRightOuter, TankRightInner},
	{TankLeftInner, TankRightInner}, // crossfeed, gated by the valve
}

// FuelSystem is the granular fuel network: five tanks, five pumps and one crossfeed valve,
// all owned by value. Not safe for concurrent use.
type FuelSystem struct {
	tanks  [numTanks]Tank
	valve  Valve
	pumps  [NumPumps]Pump
	policy TransferPolicy
}

// NewFuelSystem returns a network with empty tanks, inactive pumps, a closed crossfeed valve
// and the NoTransfer policy.
func NewFuelSystem() *FuelSystem {
	fs := &FuelSystem{
		valve:  NewValve(),
		policy: NoTransfer{},
	}
	fs.tanks[TankCenter] = NewTank(GranularCenterCapacity)
	fs.tanks[TankLeftInner] = NewTank(GranularInnerCapacity)
	fs.tanks[TankLeftOuter] = NewTank(GranularOuterCapacity)
	fs.tanks[TankRightInner] = NewTank(GranularInnerCapacity)
	fs.tanks[TankRightOuter] = NewTank(GranularOuterCapacity)
	for i, link := range defaultPumpLinks {
		fs.pumps[i] = NewPump(link[0], link[1])
	}
	return fs
}

// Tank returns the tank with the given id. Panics on an invalid id.
func (fs *FuelSystem) Tank(id TankID) *Tank {
	return &fs.tanks[id]
}

// Tanks returns a copy of all five tanks in TankID order.
func (fs *FuelSystem) Tanks() [numTanks]Tank {
	return fs.tanks
}

// Pump returns pump i. Panics when i is outside [0, NumPumps).
func (fs *FuelSystem) Pump(i int) *Pump {
	return &fs.pumps[i]
}

// Valve returns the crossfeed valve.
func (fs *FuelSystem) Valve() *Valve {
	return &fs.valve
}

// SetTransferPolicy replaces the transfer policy. nil restores NoTransfer.
func (fs *FuelSystem) SetTransferPolicy(p TransferPolicy) {
	if p == nil {
		p = NoTransfer{}
	}
	fs.policy = p
}

// Fill adds fuel to a tank and returns the volume actually added.
func (fs *FuelSystem) Fill(id TankID, volume float64) float64 {
	return fs.tanks[id].AddFuel(volume)
}

// TotalFuel is the sum of all five tank volumes.
func (fs *FuelSystem) TotalFuel() float64 {
	total := 0.0
	for i := range fs.tanks {
		total += fs.tanks[i].CurrentVolume
	}
	return total
}

// Aggregate groups the granular tanks the way the aggregate model does: center alone,
// inner+outer per wing. Read-only; nothing is written back to either model.
func (fs *FuelSystem) Aggregate() (center, left, right float64) {
	center = fs.tanks[TankCenter].CurrentVolume
	left = fs.tanks[TankLeftInner].CurrentVolume + fs.tanks[TankLeftOuter].CurrentVolume
	right = fs.tanks[TankRightInner].CurrentVolume + fs.tanks[TankRightOuter].CurrentVolume
	return center, left, right
}

// Update advances the network by deltaTime seconds. Pumps run in index order:
//   - a faulted pump moves nothing;
//   - an inactive pump is idle;
//   - an active crossfeed pump is idle while the valve is closed, and its request is
//     recorded with nothing applied;
//   - otherwise it requests policy.FlowVolume, bounded by the fuel in its source and the free
//     capacity of its target, and is transferring if anything moved.
//
// Returns one record per active pump. With the default NoTransfer policy nothing moves.
func (fs *FuelSystem) Update(deltaTime float64) []trace.TransferRecord {
	if !(deltaTime > 0) {
		return nil
	}
	var records []trace.TransferRecord
	for i := range fs.pumps {
		p := &fs.pumps[i]
		if p.State() == PumpFault || !p.active {
			continue
		}
		requested := math.Max(fs.policy.FlowVolume(i, deltaTime), 0)
		if p.Crossfeed() && !fs.valve.IsOpen() {
			p.state = PumpIdle
			records = append(records, fs.record(i, requested, 0))
			continue
		}

		src, dst := &fs.tanks[p.Source], &fs.tanks[p.Target]
		movable := math.Min(requested, math.Min(src.CurrentVolume, dst.FreeCapacity()))
		removed := src.RemoveFuel(movable)
		applied := dst.AddFuel(removed)

		if applied > 0 {
			p.state = PumpTransferring
		} else {
			p.state = PumpIdle
		}
		if applied < requested {
			logrus.Debugf("pump %d: %s -> %s moved %.3f of %.3f L", i, p.Source, p.Target, applied, requested)
		}
		records = append(records, fs.record(i, requested, applied))
	}
	return records
}

func (fs *FuelSystem) record(i int, requested, applied float64) trace.TransferRecord {
	p := &fs.pumps[i]
	return trace.TransferRecord{
		Pump:      i,
		Source:    p.Source.String(),
		Target:    p.Target.String(),
		Requested: requested,
		Applied:   applied,
		State:     string(p.State()),
	}
}
