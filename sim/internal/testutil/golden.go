// Package testutil provides shared test infrastructure for the fuel simulator.
// It holds the golden dataset types and assertion helpers used across sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one constant-control run of the aggregate model.
type GoldenTestCase struct {
	Name     string  `json:"name"`
	N1Level  float64 `json:"n1"`
	N2Level  float64 `json:"n2"`
	Altitude float64 `json:"altitude"`
	Payload  float64 `json:"payload"`
	Center   float64 `json:"center"`
	Left     float64 `json:"left"`
	Right    float64 `json:"right"`
	Steps    int     `json:"steps"`

	Expected GoldenState `json:"expected"`
}

// GoldenState is the aggregate state expected after the run.
type GoldenState struct {
	BurnRate    float64 `json:"burn_rate"`
	Center      float64 `json:"center"`
	Left        float64 `json:"left"`
	Right       float64 `json:"right"`
	TimeElapsed float64 `json:"time_elapsed"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
