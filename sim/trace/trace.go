package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps records one StepRecord per simulated second.
	TraceLevelSteps TraceLevel = "steps"
	// TraceLevelTransfers additionally records pump transfers and faults.
	TraceLevelTransfers TraceLevel = "transfers"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelSteps:     true,
	TraceLevelTransfers: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a simulation run.
type SimulationTrace struct {
	Config    TraceConfig
	Steps     []StepRecord
	Transfers []TransferRecord
	Faults    []FaultRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		Steps:     make([]StepRecord, 0),
		Transfers: make([]TransferRecord, 0),
		Faults:    make([]FaultRecord, 0),
	}
}

// RecordStep appends a step record.
func (st *SimulationTrace) RecordStep(record StepRecord) {
	st.Steps = append(st.Steps, record)
}

// RecordTransfers appends transfer records. Dropped below TraceLevelTransfers.
func (st *SimulationTrace) RecordTransfers(records ...TransferRecord) {
	if st.Config.Level != TraceLevelTransfers {
		return
	}
	st.Transfers = append(st.Transfers, records...)
}

// RecordFault appends a fault record. Dropped below TraceLevelTransfers.
func (st *SimulationTrace) RecordFault(record FaultRecord) {
	if st.Config.Level != TraceLevelTransfers {
		return
	}
	st.Faults = append(st.Faults, record)
}
