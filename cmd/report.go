package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fuel-sim/fuel-sim/sim"
	"github.com/fuel-sim/fuel-sim/sim/trace"
)

// readoutPrinter prints the per-step read-outs every `every` steps.
type readoutPrinter struct {
	w     io.Writer
	every int
	count int
}

func (p *readoutPrinter) ObserveStep(rec trace.StepRecord, _ *sim.FuelSystem) {
	p.count++
	if p.every <= 0 || p.count%p.every != 0 {
		return
	}
	fmt.Fprintf(p.w, "t=%8.2fs  burn=%.2f L/s  center=%.2f L  left=%.2f L  right=%.2f L\n",
		rec.Time, rec.BurnRate, rec.Center, rec.Left, rec.Right)
}

// printReport displays the final read-outs, the granular network when present and the
// trace summary when tracing was enabled.
func printReport(w io.Writer, s *sim.Simulator, startTime time.Time) {
	st := s.State
	fmt.Fprintln(w, "=== Fuel Simulation ===")
	fmt.Fprintf(w, "Center Tank Volume     : %.2f liters\n", st.CenterTankVolume)
	fmt.Fprintf(w, "Left Wing Tank Volume  : %.2f liters\n", st.LeftWingTankVolume)
	fmt.Fprintf(w, "Right Wing Tank Volume : %.2f liters\n", st.RightWingTankVolume)
	fmt.Fprintf(w, "Time Elapsed           : %.2f seconds\n", st.TimeElapsed)
	fmt.Fprintf(w, "Fuel Burn Rate         : %.2f liters/second\n", st.FuelBurnRate)

	if fs := s.System; fs != nil {
		fmt.Fprintln(w, "=== Fuel System ===")
		for i, t := range fs.Tanks() {
			fmt.Fprintf(w, "%-22s : %.2f / %.0f liters\n", sim.TankID(i), t.CurrentVolume, t.Capacity)
		}
		for i := 0; i < sim.NumPumps; i++ {
			p := fs.Pump(i)
			fmt.Fprintf(w, "%-22s : %s (%s -> %s)\n", fmt.Sprintf("Pump %d", i), p.State(), p.Source, p.Target)
		}
		valve := "closed"
		if fs.Valve().IsOpen() {
			valve = "open"
		}
		fmt.Fprintf(w, "Crossfeed Valve        : %s\n", valve)
	}

	if s.Trace != nil {
		sum := trace.Summarize(s.Trace)
		fmt.Fprintln(w, "=== Trace Summary ===")
		fmt.Fprintf(w, "Steps                  : %d\n", sum.Steps)
		fmt.Fprintf(w, "Total Burned           : %.2f liters\n", sum.TotalBurned)
		fmt.Fprintf(w, "Mean Burn Rate         : %.4f liters/second\n", sum.MeanBurnRate)
		fmt.Fprintf(w, "Max Burn Rate          : %.4f liters/second\n", sum.MaxBurnRate)
		if s.System != nil {
			fmt.Fprintf(w, "Total Transferred      : %.2f liters\n", sum.TotalTransferred)
			fmt.Fprintf(w, "Partial Transfers      : %d\n", sum.PartialTransfers)
			fmt.Fprintf(w, "Pump Faults            : %d\n", sum.Faults)
		}
		tanks := make([]string, 0, len(sum.FirstEmpty))
		for tank := range sum.FirstEmpty {
			tanks = append(tanks, tank)
		}
		sort.Strings(tanks)
		for _, tank := range tanks {
			fmt.Fprintf(w, "%-22s : empty at %.0f s\n", tank, sum.FirstEmpty[tank])
		}
	}
	fmt.Fprintf(w, "Simulation Duration    : %s\n", time.Since(startTime).Round(time.Microsecond))
}
