package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Steps            int
	TotalBurned      float64
	MeanBurnRate     float64
	MaxBurnRate      float64
	TotalTransferred float64
	PartialTransfers int
	Faults           int
	FirstEmpty       map[string]float64 // aggregate tank → time it first reached zero
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		FirstEmpty: make(map[string]float64),
	}
	if st == nil {
		return summary
	}

	summary.Steps = len(st.Steps)
	if len(st.Steps) > 0 {
		totalRate := 0.0
		for _, s := range st.Steps {
			totalRate += s.BurnRate
			summary.TotalBurned += s.Burned
			if s.BurnRate > summary.MaxBurnRate {
				summary.MaxBurnRate = s.BurnRate
			}
			markEmpty(summary.FirstEmpty, "center", s.Center, s.Time)
			markEmpty(summary.FirstEmpty, "left", s.Left, s.Time)
			markEmpty(summary.FirstEmpty, "right", s.Right, s.Time)
		}
		summary.MeanBurnRate = totalRate / float64(len(st.Steps))
	}

	for _, r := range st.Transfers {
		summary.TotalTransferred += r.Applied
		if r.Partial() {
			summary.PartialTransfers++
		}
	}
	summary.Faults = len(st.Faults)

	return summary
}

func markEmpty(firstEmpty map[string]float64, tank string, volume, at float64) {
	if volume > 0 {
		return
	}
	if _, seen := firstEmpty[tank]; !seen {
		firstEmpty[tank] = at
	}
}
