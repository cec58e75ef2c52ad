// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conformance

import (
	"math"
	"slices"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Result is the outcome of one scenario.
type Result struct {
	Species  string
	Scenario string
	Op       string
	Category string
	// Err is nil on success, an *oracle.Mismatch on a wrong result, or a
	// *hwy.PreconditionError if the operation rejected its operands.
	Err error
	// Elements is the length of each input buffer.
	Elements int
	Duration time.Duration
	// Ulp holds the measured ulp distances from the strict reference when
	// the run measured them.
	Ulp []float64
}

// Passed reports whether the scenario produced no error.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Report collects the results of a Suite run.
type Report struct {
	Species string
	Results []Result
}

// Passed returns the number of passing scenarios.
func (r *Report) Passed() int {
	return lo.CountBy(r.Results, Result.Passed)
}

// Failed returns the number of failing scenarios.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Failures returns the failing results in run order.
func (r *Report) Failures() []Result {
	return lo.Reject(r.Results, func(res Result, _ int) bool { return res.Passed() })
}

// ByCategory groups results by scenario category.
func (r *Report) ByCategory() map[string][]Result {
	return lo.GroupBy(r.Results, func(res Result) string { return res.Category })
}

// Duration is the summed run time of all scenarios.
func (r *Report) Duration() time.Duration {
	return lo.SumBy(r.Results, func(res Result) time.Duration { return res.Duration })
}

// UlpStats summarises every ulp sample of the report.
func (r *Report) UlpStats() UlpStats {
	return NewUlpStats(lo.FlatMap(r.Results, func(res Result, _ int) []float64 { return res.Ulp }))
}

// UlpStats describes a distribution of ulp distances.
type UlpStats struct {
	Samples int
	Mean    float64
	StdDev  float64
	P99     float64
	Max     float64
}

// NewUlpStats computes the statistics of samples. Empty input yields the
// zero UlpStats.
func NewUlpStats(samples []float64) UlpStats {
	if len(samples) == 0 {
		return UlpStats{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	st := UlpStats{
		Samples: len(sorted),
		Mean:    stat.Mean(sorted, nil),
		P99:     stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max:     floats.Max(sorted),
	}
	if len(sorted) > 1 {
		st.StdDev = stat.StdDev(sorted, nil)
	}
	if math.IsNaN(st.StdDev) {
		st.StdDev = 0
	}
	return st
}
