package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fuel-sim/fuel-sim/sim"
	"github.com/fuel-sim/fuel-sim/sim/metrics"
	"github.com/fuel-sim/fuel-sim/sim/trace"
)

var (
	// Engine and flight controls (clamped before use)
	n1Level  float64 // N1 level, [0, 1]
	n2Level  float64 // N2 level, [0, 1]
	altitude float64 // Altitude in feet, [0, 40000]
	payload  float64 // Payload in tonnes, [0, 319]
	steps    int     // Number of one-second steps

	// Initial aggregate tank volumes
	centerVolume float64
	leftVolume   float64
	rightVolume  float64

	// Granular network
	network       bool    // Tick the five-tank FuelSystem alongside the aggregate model
	activePumps   []int   // Pump indices switched on at start
	crossfeedOpen bool    // Open the crossfeed valve at start
	transferRate  float64 // Liters/second per active pump (0 = no transfer)
	seed          int64   // Seed for pump fault injection
	pumpFaultProb float64 // Per pump, per step fault probability

	scenarioPath string // YAML flight profile
	traceLevel   string // Trace verbosity
	logLevel     string // Log verbosity level
	reportEvery  int    // Print read-outs every N steps (0 = final only)
	metricsOut   string // Prometheus textfile path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fuel-sim",
	Short: "Discrete-time aircraft fuel system simulator",
}

// runCmd executes the simulation using parameters from CLI flags or a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fuel simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		state, cfg, err := buildRun(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		s, err := sim.NewSimulator(state, cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		var collector *metrics.FuelCollector
		if metricsOut != "" {
			collector, err = metrics.NewFuelCollector(prometheus.NewRegistry())
			if err != nil {
				logrus.Fatalf("Failed to register metrics: %v", err)
			}
			s.AddObserver(collector)
		}
		if reportEvery > 0 {
			s.AddObserver(&readoutPrinter{w: os.Stdout, every: reportEvery})
		}

		logrus.Infof("Starting simulation with %d phases, %d steps, network=%v",
			len(cfg.Phases), cfg.TotalSteps(), cfg.Network != nil)
		startTime := time.Now()
		s.Run()
		printReport(os.Stdout, s, startTime)

		if collector != nil {
			if err := collector.WriteTextfile(metricsOut); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Metrics written to %s", metricsOut)
		}
		logrus.Info("Simulation complete.")
	},
}

// buildRun assembles the initial state and simulator configuration. With --scenario the
// YAML file is the base and only flags set explicitly on the command line override it.
func buildRun(cmd *cobra.Command) (*sim.SimulationState, sim.SimConfig, error) {
	flags := cmd.Flags()
	if scenarioPath == "" {
		return buildFromFlags()
	}

	sc, err := LoadScenario(scenarioPath)
	if err != nil {
		return nil, sim.SimConfig{}, err
	}
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("pump-fault-prob") {
		sc.Faults.PumpFaultProb = pumpFaultProb
	}
	if flags.Changed("trace") {
		sc.Trace = trace.TraceLevel(traceLevel)
	}
	applyNetworkFlags(flags, sc)
	if flags.Changed("center") {
		sc.Initial.Center = &centerVolume
	}
	if flags.Changed("left") {
		sc.Initial.Left = &leftVolume
	}
	if flags.Changed("right") {
		sc.Initial.Right = &rightVolume
	}
	for _, name := range []string{"n1", "n2", "altitude", "payload", "steps"} {
		if flags.Changed(name) {
			logrus.Warnf("--%s ignored: phase controls come from scenario %s", name, scenarioPath)
		}
	}
	if err := sc.Validate(); err != nil {
		return nil, sim.SimConfig{}, fmt.Errorf("invalid scenario %s: %w", scenarioPath, err)
	}
	cfg, err := sc.SimConfig()
	if err != nil {
		return nil, sim.SimConfig{}, err
	}
	return sc.State(), cfg, nil
}

// applyNetworkFlags merges the explicitly set network flags into sc. --network adds a network
// with every granular tank full when the scenario has none, and --network=false removes it.
// Pump, crossfeed and rate flags without a network to apply to are reported and ignored.
func applyNetworkFlags(flags *pflag.FlagSet, sc *Scenario) {
	if flags.Changed("network") {
		switch {
		case !network:
			sc.Network = nil
		case sc.Network == nil:
			sc.Network = &NetworkSpec{Tanks: fullNetworkTanks()}
		}
	}
	if sc.Network == nil {
		for _, name := range []string{"active-pumps", "crossfeed", "transfer-rate"} {
			if flags.Changed(name) {
				logrus.Warnf("--%s ignored: scenario %s has no network (add --network)", name, scenarioPath)
			}
		}
		return
	}
	if flags.Changed("active-pumps") {
		sc.Network.ActivePumps = activePumps
	}
	if flags.Changed("crossfeed") {
		sc.Network.CrossfeedOpen = crossfeedOpen
	}
	if flags.Changed("transfer-rate") {
		sc.Network.TransferRate = transferRate
	}
}

func fullNetworkTanks() map[string]float64 {
	tanks := make(map[string]float64)
	for id, t := range sim.NewFuelSystem().Tanks() {
		tanks[sim.TankID(id).String()] = t.Capacity
	}
	return tanks
}

func buildFromFlags() (*sim.SimulationState, sim.SimConfig, error) {
	if steps < 0 {
		return nil, sim.SimConfig{}, fmt.Errorf("--steps must be non-negative, got %d", steps)
	}
	state := sim.NewSimulationState()
	state.CenterTankVolume = centerVolume
	state.LeftWingTankVolume = leftVolume
	state.RightWingTankVolume = rightVolume

	cfg := sim.SimConfig{
		Phases: []sim.Phase{{
			Name:     "manual",
			Controls: sim.Controls{N1Level: n1Level, N2Level: n2Level, Altitude: altitude, Payload: payload},
			Steps:    steps,
		}},
		Faults: sim.FaultConfig{Seed: seed, PumpFaultProb: pumpFaultProb},
		Trace:  trace.TraceConfig{Level: trace.TraceLevel(traceLevel)},
	}
	if network {
		nc := &sim.NetworkConfig{
			InitialVolumes: make(map[sim.TankID]float64),
			ActivePumps:    activePumps,
			CrossfeedOpen:  crossfeedOpen,
			TransferRate:   transferRate,
		}
		// Start with every granular tank full.
		fs := sim.NewFuelSystem()
		for id, t := range fs.Tanks() {
			nc.InitialVolumes[sim.TankID(id)] = t.Capacity
		}
		cfg.Network = nc
	}
	return state, cfg, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags of c to the package-level variables.
func registerRunFlags(c *cobra.Command) {
	c.Flags().Float64Var(&n1Level, "n1", 0.5, "N1 level [0, 1]")
	c.Flags().Float64Var(&n2Level, "n2", 0.5, "N2 level [0, 1]")
	c.Flags().Float64Var(&altitude, "altitude", 10000, "Altitude in feet [0, 40000]")
	c.Flags().Float64Var(&payload, "payload", 0, "Payload in tonnes [0, 319]")
	c.Flags().IntVar(&steps, "steps", 1, "Number of one-second simulation steps")

	c.Flags().Float64Var(&centerVolume, "center", sim.CenterTankCapacity, "Initial center tank volume (liters)")
	c.Flags().Float64Var(&leftVolume, "left", sim.WingTankCapacity, "Initial left wing tank volume (liters)")
	c.Flags().Float64Var(&rightVolume, "right", sim.WingTankCapacity, "Initial right wing tank volume (liters)")

	c.Flags().BoolVar(&network, "network", false, "Tick the granular five-tank fuel system alongside the aggregate model")
	c.Flags().IntSliceVar(&activePumps, "active-pumps", nil, "Comma-separated pump indices to switch on (0-4)")
	c.Flags().BoolVar(&crossfeedOpen, "crossfeed", false, "Open the crossfeed valve at start")
	c.Flags().Float64Var(&transferRate, "transfer-rate", 0, "Liters per second moved by each active pump (0 disables transfers)")
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for pump fault injection")
	c.Flags().Float64Var(&pumpFaultProb, "pump-fault-prob", 0, "Per pump, per step probability of a fault [0, 1]")

	c.Flags().StringVar(&scenarioPath, "scenario", "", "YAML flight profile; explicitly set flags override its values")
	c.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, steps, transfers)")
	c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().IntVar(&reportEvery, "report-every", 0, "Print read-outs every N steps (0 = final only)")
	c.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics in textfile format to this path")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
