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


// Package conformance runs lane-parallel vector operations over generated
// buffers and checks every result against the scalar references in the
// oracle package.
//
// A Suite is bound to one species. It enumerates scenarios (an operator, a
// form such as masked or broadcast, and generators for its inputs), runs
// each one chunk by chunk on a worker pool, and collects the outcome in a
// Report:
//
//	suite := conformance.NewSuite(hwy.Float64x4, conformance.ConfigFromEnv(),
//		conformance.WithLogger(logger))
//	report, err := suite.Run(ctx)
//	if report.Failed() > 0 {
//		...
//	}
package conformance

import (
	"fmt"
	"os"
	"strconv"
)

// Config tunes a conformance run.
type Config struct {
	// Iterations is how many times each scenario reruns its chunk loop.
	Iterations int
	// BufferBudget sizes input buffers: a species of B bits gets
	// BufferBudget/B chunks.
	BufferBudget int
	// Workers is the chunk worker count; 0 uses GOMAXPROCS.
	Workers int
	// Seed drives the random mask, index and shuffle generators.
	Seed uint64
	// MeasureUlp records the ulp error of transcendental results against
	// their strict references.
	MeasureUlp bool
}

// Environment variables read by ConfigFromEnv.
const (
	EnvIterations   = "HWY_CONFORMANCE_ITERATIONS"
	EnvBufferBudget = "HWY_CONFORMANCE_BUFFER_BYTES"
	EnvSeed         = "HWY_CONFORMANCE_SEED"
)

// DefaultConfig returns 100 iterations over a 25000 byte budget.
func DefaultConfig() Config {
	return Config{
		Iterations:   100,
		BufferBudget: 25000,
		Seed:         1,
	}
}

// ConfigFromEnv is DefaultConfig overridden by the HWY_CONFORMANCE_*
// environment variables. Unparsable values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if n, ok := envInt(EnvIterations); ok {
		cfg.Iterations = n
	}
	if n, ok := envInt(EnvBufferBudget); ok {
		cfg.BufferBudget = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		if seed, err := strconv.ParseUint(v, 0, 64); err == nil {
			cfg.Seed = seed
		}
	}
	return cfg
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Validate reports a configuration that cannot run.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("conformance: iterations must be positive, got %d", c.Iterations)
	}
	if c.BufferBudget <= 0 {
		return fmt.Errorf("conformance: buffer budget must be positive, got %d", c.BufferBudget)
	}
	if c.Workers < 0 {
		return fmt.Errorf("conformance: workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// BufferLength returns the element count of every input buffer for a
// species of the given shape: (BufferBudget / vectorBits) * lanes, and at
// least one chunk.
func (c Config) BufferLength(vectorBits, lanes int) int {
	return max(1, c.BufferBudget/vectorBits) * lanes
}
