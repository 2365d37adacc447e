package sim

// FaultInjector fails active pumps at random. Each active, non-faulted pump fails with
// probability Prob per update, drawn from its own RNG subsystem.
type FaultInjector struct {
	Prob float64
	rng  *PartitionedRNG
}

// NewFaultInjector returns an injector seeded from key. prob <= 0 never fails a pump.
func NewFaultInjector(key SimulationKey, prob float64) *FaultInjector {
	return &FaultInjector{Prob: prob, rng: NewPartitionedRNG(key)}
}

// Key returns the SimulationKey the fault draws are seeded from.
func (f *FaultInjector) Key() SimulationKey {
	return f.rng.Key()
}

// Inject draws once per active pump and fails the unlucky ones. Returns the failed pump indices.
func (f *FaultInjector) Inject(fs *FuelSystem) []int {
	if f == nil || !(f.Prob > 0) {
		return nil
	}
	var failed []int
	for i := range fs.pumps {
		p := &fs.pumps[i]
		if !p.active || p.State() == PumpFault {
			continue
		}
		if f.rng.ForSubsystem(SubsystemPump(i)).Float64() < f.Prob {
			p.Fail()
			failed = append(failed, i)
		}
	}
	return failed
}
