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
	"math/rand/v2"
	"strings"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/oracle"
	"github.com/ajroetker/go-lanes/hwy/contrib/workerpool"
)

// Scenario categories beyond the operator categories.
const (
	CategoryReduction = "reduction"
	CategoryRearrange = "rearrange"
	CategorySlice     = "slice"
	CategoryMemory    = "memory"
	CategorySmoke     = "smoke"
)

// Scenario is one operator applied in one form to one choice of input
// generators.
type Scenario[T hwy.Floats] struct {
	Op       string
	Form     string
	Category string
	Inputs   []string
	run      func(x *exec[T]) error
}

// Name renders the scenario as OP.form(input, ...).
func (sc Scenario[T]) Name() string {
	var sb strings.Builder
	sb.WriteString(sc.Op)
	if sc.Form != "" {
		sb.WriteByte('.')
		sb.WriteString(sc.Form)
	}
	sb.WriteByte('(')
	sb.WriteString(strings.Join(sc.Inputs, ", "))
	sb.WriteByte(')')
	return sb.String()
}

func opScenario[T hwy.Floats](op hwy.Operator, form string, inputs ...string) Scenario[T] {
	return Scenario[T]{
		Op:       op.String(),
		Form:     form,
		Category: op.Category().String(),
		Inputs:   inputs,
	}
}

// exec is the state of one scenario run.
type exec[T hwy.Floats] struct {
	s       *hwy.Species[T]
	lanes   int
	n       int
	iters   int
	pool    *workerpool.Pool
	rng     *rand.Rand
	measure bool
	ulp     []float64
}

// loop runs fn over the offset of every chunk, Iterations times.
func (x *exec[T]) loop(fn func(off int)) {
	for range x.iters {
		x.pool.ForEachChunk(x.n, x.lanes, fn)
	}
}

func (x *exec[T]) chunks() int {
	return x.n / x.lanes
}

// mask returns nil and an all-true mask when g is nil.
func (x *exec[T]) mask(g *MaskGenerator) ([]bool, hwy.Mask[T]) {
	if g == nil {
		return nil, hwy.MaskAll(x.s, true)
	}
	bools := g.Fill(x.lanes)
	return bools, hwy.MaskFromBools(x.s, bools, 0)
}

func (x *exec[T]) checker(sc Scenario[T]) oracle.Checker[T] {
	return oracle.NewChecker(sc.Op, x.s)
}

// recordUlp keeps the finite ulp distances of r from the strict values of
// each set lane.
func (x *exec[T]) recordUlp(r []T, mask []bool, strict func(i int) T) {
	if !x.measure {
		return
	}
	for i := range r {
		if mask != nil && !mask[i%x.lanes] {
			continue
		}
		if d := oracle.UlpDistance(r[i], strict(i)); !math.IsInf(d, 0) {
			x.ulp = append(x.ulp, d)
		}
	}
}

func maskName(g *MaskGenerator) []string {
	if g == nil {
		return nil
	}
	return []string{g.Name}
}

func withMasks(masks []MaskGenerator) []*MaskGenerator {
	out := []*MaskGenerator{nil}
	for i := range masks {
		out = append(out, &masks[i])
	}
	return out
}

func masked(form string, g *MaskGenerator) string {
	if g == nil {
		return form
	}
	if form == "" {
		return "masked"
	}
	return form + ".masked"
}

func names[T hwy.Floats](gens []Generator[T]) []string {
	out := make([]string, len(gens))
	for i, g := range gens {
		out[i] = g.Name
	}
	return out
}
