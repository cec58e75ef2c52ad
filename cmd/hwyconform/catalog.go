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
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/conformance"
)

// speciesRunner runs the suite of one species without exposing its lane
// type.
type speciesRunner struct {
	name  string
	elem  string
	lanes int
	bits  int
	run   func(ctx context.Context, cfg conformance.Config, opts ...conformance.Option) (*conformance.Report, error)
}

func runnerFor[T hwy.Floats](s *hwy.Species[T]) speciesRunner {
	var zero T
	return speciesRunner{
		name:  s.Name(),
		elem:  fmt.Sprintf("%T", zero),
		lanes: s.NumLanes(),
		bits:  s.VectorBits(),
		run: func(ctx context.Context, cfg conformance.Config, opts ...conformance.Option) (*conformance.Report, error) {
			return conformance.NewSuite(s, cfg, opts...).Run(ctx)
		},
	}
}

var allSpecies = []speciesRunner{
	runnerFor(hwy.Float32x2),
	runnerFor(hwy.Float32x4),
	runnerFor(hwy.Float32x8),
	runnerFor(hwy.Float32x16),
	runnerFor(hwy.Float64x1),
	runnerFor(hwy.Float64x2),
	runnerFor(hwy.Float64x4),
	runnerFor(hwy.Float64x8),
}

// selectSpecies resolves species names. "all" selects every species and
// an empty list selects the preferred species of the running CPU.
func selectSpecies(names []string) ([]speciesRunner, error) {
	if len(names) == 0 {
		names = preferredNames()
	}
	var out []speciesRunner
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			return allSpecies, nil
		}
		r, ok := lo.Find(allSpecies, func(r speciesRunner) bool { return r.name == name })
		if !ok {
			return nil, fmt.Errorf("unknown species %q (have %s)", name,
				strings.Join(lo.Map(allSpecies, func(r speciesRunner, _ int) string { return r.name }), ", "))
		}
		out = append(out, r)
	}
	return lo.UniqBy(out, func(r speciesRunner) string { return r.name }), nil
}

func preferredNames() []string {
	return []string{hwy.PreferredSpecies[float32]().Name(), hwy.PreferredSpecies[float64]().Name()}
}

func newSpeciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "species",
		Short: "List the vector species",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			preferred := preferredNames()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tELEMENT\tLANES\tBITS\t")
			for _, r := range allSpecies {
				mark := ""
				if lo.Contains(preferred, r.name) {
					mark = "preferred"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.name, r.elem, r.lanes, r.bits, mark)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dispatch level: %s (%d byte registers)\n", hwy.CurrentName(), hwy.CurrentWidth())
			return nil
		},
	}
}

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operator catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OPERATOR\tCATEGORY\tARITY\tEQUIVALENCE\tREDUCTION\t")
			for _, op := range hwy.Operators() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%t\n", op, op.Category(), op.Arity(), op.Equivalence(), op.Associative())
			}
			return w.Flush()
		},
	}
}
