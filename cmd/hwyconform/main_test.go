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

package main

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-lanes/hwy/contrib/conformance"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--species", "float64x1,Float32x4", "--iterations", "1",
		"--buffer-bytes", "256", "--ops", "ADD,MAX")
	require.NoError(t, err, out)
	assert.Contains(t, out, "float64x1: 1 lanes")
	assert.Contains(t, out, "ok float32x4")
	for _, category := range []string{"Arithmetic", "Reduction"} {
		assert.Regexp(t, `(?m)^  `+category+`\s+[\d,]+ passed\s+0 failed$`, out)
	}
	assert.NotRegexp(t, `passed\s+[1-9][\d,]* failed`, out)
	assert.NotContains(t, out, "FAIL")
}

func TestRunReportsNaNReductions(t *testing.T) {
	out, err := execute(t, "run", "--species", "float64x4,float32x8", "--iterations", "1",
		"--buffer-bytes", "256", "--ops", "MIN,MAX")
	require.NoError(t, err, out)
	assert.Regexp(t, `(?m)^  Reduction\s+[\d,]+ passed\s+0 failed$`, out)
	assert.Contains(t, out, "ok float64x4")
	assert.Contains(t, out, "ok float32x8")
}

func TestRunULPStats(t *testing.T) {
	out, err := execute(t, "run", "--species", "float64x2", "--iterations", "1",
		"--buffer-bytes", "256", "--ops", "EXP", "--ulp-stats")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ulp error:")
	assert.Contains(t, out, "Transcendental")
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := execute(t, "run", "--species", "float128x2")
	assert.ErrorContains(t, err, "unknown species")

	_, err = execute(t, "run", "--species", "float64x2", "--iterations", "0")
	assert.ErrorContains(t, err, "iterations")
}

func TestSelectSpecies(t *testing.T) {
	all, err := selectSpecies([]string{"float32x2", "all"})
	require.NoError(t, err)
	assert.Len(t, all, 8)

	some, err := selectSpecies([]string{"float64x8", " FLOAT64X8 "})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, 8, some[0].lanes)

	preferred, err := selectSpecies(nil)
	require.NoError(t, err)
	assert.Len(t, preferred, 2)
}

func TestOpsCommand(t *testing.T) {
	out, err := execute(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "FIRST_NONZERO")
	assert.Contains(t, out, "within-1-ulp")
	assert.Contains(t, out, "IS_INFINITE")
}

func TestSpeciesCommand(t *testing.T) {
	out, err := execute(t, "species")
	require.NoError(t, err)
	assert.Contains(t, out, "float32x16")
	assert.Contains(t, out, "preferred")
	assert.Contains(t, out, "dispatch level:")
}

func TestBindConfigFlags(t *testing.T) {
	cfg := conformance.DefaultConfig()
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindConfigFlags(f, &cfg)
	require.NoError(t, f.Parse([]string{"--iterations", "7", "--seed", "42"}))
	assert.Equal(t, 7, cfg.Iterations)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, conformance.DefaultConfig().BufferBudget, cfg.BufferBudget)
}
