// Package metrics exposes fuel simulation state as Prometheus gauges and counters.
// Runs are short, so the usual export is a node-exporter textfile written at the end.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fuel-sim/fuel-sim/sim"
	"github.com/fuel-sim/fuel-sim/sim/trace"
)

// Model label values for fuel_tank_volume_liters.
const (
	ModelAggregate = "aggregate"
	ModelGranular  = "granular"
)

var pumpStates = []sim.PumpState{sim.PumpIdle, sim.PumpTransferring, sim.PumpFault}

// FuelCollector bundles the simulation metrics. It implements sim.StepObserver.
type FuelCollector struct {
	gatherer prometheus.Gatherer

	TankVolume  *prometheus.GaugeVec
	BurnRate    prometheus.Gauge
	TimeElapsed prometheus.Gauge
	Steps       prometheus.Counter
	FuelBurned  prometheus.Counter
	PumpState   *prometheus.GaugeVec
}

// NewFuelCollector registers the fuel metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewFuelCollector(reg prometheus.Registerer) (*FuelCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	volume, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuel_tank_volume_liters",
		Help: "Fuel remaining per tank, labeled by tank model and tank name.",
	}, []string{"model", "tank"}), "fuel_tank_volume_liters")
	if err != nil {
		return nil, err
	}
	pumps, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuel_pump_state",
		Help: "1 for the current state of each pump, 0 for the others.",
	}, []string{"pump", "state"}), "fuel_pump_state")
	if err != nil {
		return nil, err
	}
	rate, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fuel_burn_rate_liters_per_second",
		Help: "Burn rate computed by the latest step.",
	}), "fuel_burn_rate_liters_per_second")
	if err != nil {
		return nil, err
	}
	elapsed, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fuel_sim_time_elapsed_seconds",
		Help: "Simulated seconds since start.",
	}), "fuel_sim_time_elapsed_seconds")
	if err != nil {
		return nil, err
	}
	steps, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fuel_sim_steps_total",
		Help: "Simulation steps executed.",
	}), "fuel_sim_steps_total")
	if err != nil {
		return nil, err
	}
	burned, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fuel_burned_liters_total",
		Help: "Fuel removed from the aggregate tanks.",
	}), "fuel_burned_liters_total")
	if err != nil {
		return nil, err
	}

	return &FuelCollector{
		gatherer:    gatherer,
		TankVolume:  volume,
		BurnRate:    rate,
		TimeElapsed: elapsed,
		Steps:       steps,
		FuelBurned:  burned,
		PumpState:   pumps,
	}, nil
}

// ObserveStep updates every metric from a step record and, when present, the granular network.
func (c *FuelCollector) ObserveStep(rec trace.StepRecord, fs *sim.FuelSystem) {
	if c == nil {
		return
	}
	c.Steps.Inc()
	c.FuelBurned.Add(rec.Burned)
	c.BurnRate.Set(rec.BurnRate)
	c.TimeElapsed.Set(rec.Time)
	c.TankVolume.WithLabelValues(ModelAggregate, "center").Set(rec.Center)
	c.TankVolume.WithLabelValues(ModelAggregate, "left").Set(rec.Left)
	c.TankVolume.WithLabelValues(ModelAggregate, "right").Set(rec.Right)

	if fs == nil {
		return
	}
	for i, t := range fs.Tanks() {
		c.TankVolume.WithLabelValues(ModelGranular, sim.TankID(i).String()).Set(t.CurrentVolume)
	}
	for i := 0; i < sim.NumPumps; i++ {
		current := fs.Pump(i).State()
		pump := fmt.Sprintf("%d", i)
		for _, st := range pumpStates {
			v := 0.0
			if st == current {
				v = 1
			}
			c.PumpState.WithLabelValues(pump, string(st)).Set(v)
		}
	}
}

// WriteTextfile writes the current metric values in the text exposition format, atomically.
func (c *FuelCollector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
