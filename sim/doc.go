// Package sim provides the fuel network model for fuel-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - burn.go: Burn Model mapping engine/flight controls to a burn rate, and its distribution
//     across the three aggregate tanks
//   - state.go: SimulationState (aggregate tanks, controls, clock) and the Step driver
//   - fuel_system.go: the granular network of five tanks, five pumps and the crossfeed valve
//
// # Two tank models
//
// The aggregate model (center, left wing, right wing) is what the control surface drives each
// step. The granular FuelSystem is a separate, finer-grained model that will replace it; the two
// are never merged. FuelSystem.Aggregate exposes a read-only view of the granular tanks grouped the
// same way as the aggregate model.
//
// # Key Interfaces
//
//   - TransferPolicy: volume a pump requests per update (NoTransfer by default)
//
// Sub-packages:
//   - sim/trace/: step and transfer records, summary statistics
//   - sim/metrics/: Prometheus gauges for tank volumes and burn rate
package sim
