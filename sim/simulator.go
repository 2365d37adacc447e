// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fuel-sim/fuel-sim/sim/trace"
)

// StepObserver is notified after every simulated second. fs is nil when the run has no
// granular network.
type StepObserver interface {
	ObserveStep(rec trace.StepRecord, fs *FuelSystem)
}

// Simulator drives the aggregate model, and optionally the granular FuelSystem, one second
// at a time through a sequence of phases. Not safe for concurrent use: every mutation of
// State and System happens on the calling goroutine.
type Simulator struct {
	State *SimulationState
	// System is the granular network ticked alongside the aggregate model (nil if disabled).
	System *FuelSystem
	// Trace is nil when tracing is disabled.
	Trace *trace.SimulationTrace

	phases    []Phase
	faults    *FaultInjector
	observers []StepObserver
	empty     map[string]bool
}

// NewSimulator validates state and cfg and builds a simulator. A nil state starts from
// NewSimulationState.
func NewSimulator(state *SimulationState, cfg SimConfig) (*Simulator, error) {
	if state == nil {
		state = NewSimulationState()
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("invalid initial state: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	state.Controls = state.Controls.Clamp()

	s := &Simulator{
		State:  state,
		phases: cfg.Phases,
		empty:  make(map[string]bool),
	}
	if cfg.Trace.Level != "" && cfg.Trace.Level != trace.TraceLevelNone {
		s.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	if cfg.Network != nil {
		fs, overflow, err := cfg.Network.BuildFuelSystem()
		if err != nil {
			return nil, fmt.Errorf("building fuel system: %w", err)
		}
		if overflow > 0 {
			logrus.Warnf("initial fuel exceeds granular tank capacity; %.1f L discarded", overflow)
		}
		s.System = fs
		s.faults = NewFaultInjector(NewSimulationKey(cfg.Faults.Seed), cfg.Faults.PumpFaultProb)
		if s.faults.Prob > 0 {
			logrus.Infof("pump fault injection enabled: seed=%d prob=%.4f", s.faults.Key(), s.faults.Prob)
		}
	}
	return s, nil
}

// AddObserver registers o to be called after each step.
func (s *Simulator) AddObserver(o StepObserver) {
	s.observers = append(s.observers, o)
}

// Step advances the simulation by one second and returns the step's record.
// Controls are clamped first, so a negative burn rate never adds fuel.
func (s *Simulator) Step() trace.StepRecord {
	s.State.Controls = s.State.Controls.Clamp()
	before := s.State.TotalFuel()
	rate := Step(s.State)

	rec := trace.StepRecord{
		Time:     s.State.TimeElapsed,
		N1Level:  s.State.N1Level,
		N2Level:  s.State.N2Level,
		Altitude: s.State.Altitude,
		Payload:  s.State.Payload,
		BurnRate: rate,
		Burned:   before - s.State.TotalFuel(),
		Center:   s.State.CenterTankVolume,
		Left:     s.State.LeftWingTankVolume,
		Right:    s.State.RightWingTankVolume,
	}
	logrus.Debugf("[t=%07.1f] burn=%.4f L/s center=%.2f left=%.2f right=%.2f",
		rec.Time, rate, rec.Center, rec.Left, rec.Right)
	s.checkEmpty("center", rec.Center, rec.Time)
	s.checkEmpty("left wing", rec.Left, rec.Time)
	s.checkEmpty("right wing", rec.Right, rec.Time)

	if s.Trace != nil {
		s.Trace.RecordStep(rec)
	}
	if s.System != nil {
		s.updateSystem(rec.Time)
	}
	for _, o := range s.observers {
		o.ObserveStep(rec, s.System)
	}
	return rec
}

func (s *Simulator) updateSystem(now float64) {
	for _, idx := range s.faults.Inject(s.System) {
		logrus.Warnf("[t=%07.1f] pump %d failed", now, idx)
		if s.Trace != nil {
			s.Trace.RecordFault(trace.FaultRecord{Time: now, Pump: idx})
		}
	}
	records := s.System.Update(1.0)
	if s.Trace == nil {
		return
	}
	for i := range records {
		records[i].Time = now
	}
	s.Trace.RecordTransfers(records...)
}

func (s *Simulator) checkEmpty(tank string, volume, now float64) {
	if volume > 0 || s.empty[tank] {
		return
	}
	s.empty[tank] = true
	logrus.Warnf("[t=%07.1f] %s tank empty", now, tank)
}

// Run executes every phase in order, applying each phase's clamped controls before its steps.
func (s *Simulator) Run() {
	for i, ph := range s.phases {
		s.State.Controls = ph.Controls.Clamp()
		logrus.Infof("[t=%07.1f] phase %d %q: n1=%.2f n2=%.2f altitude=%.0f payload=%.1f steps=%d",
			s.State.TimeElapsed, i, ph.Name, s.State.N1Level, s.State.N2Level,
			s.State.Altitude, s.State.Payload, ph.Steps)
		for n := 0; n < ph.Steps; n++ {
			s.Step()
		}
	}
	logrus.Infof("[t=%07.1f] Simulation ended", s.State.TimeElapsed)
}
