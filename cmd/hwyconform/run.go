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
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-lanes/hwy/contrib/conformance"
	"github.com/ajroetker/go-lanes/hwy/contrib/workerpool"
)

// maxListedFailures bounds the failures printed per species.
const maxListedFailures = 10

type runOptions struct {
	species  []string
	ops      []string
	cfg      conformance.Config
	ulpStats bool
	verbose  bool
}

func newRunCmd() *cobra.Command {
	o := &runOptions{cfg: conformance.ConfigFromEnv()}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the conformance catalog",
		Long: `Run every conformance scenario of the selected species and print a
summary per category. Defaults come from the HWY_CONFORMANCE_* environment
variables; flags override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&o.species, "species", nil, "species to check, or \"all\" (default: preferred species)")
	f.StringSliceVar(&o.ops, "ops", nil, "only run scenarios of these operators")
	bindConfigFlags(f, &o.cfg)
	f.BoolVar(&o.ulpStats, "ulp-stats", false, "measure ulp error of transcendental results")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log every scenario")
	return cmd
}

// bindConfigFlags registers the suite tunables on f, defaulting to the
// current values of cfg.
func bindConfigFlags(f *pflag.FlagSet, cfg *conformance.Config) {
	f.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "chunk loop repetitions per scenario")
	f.IntVar(&cfg.BufferBudget, "buffer-bytes", cfg.BufferBudget, "input buffer budget in bytes")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "chunk workers (0 uses GOMAXPROCS)")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the random mask, index and shuffle generators")
}

func (o *runOptions) logger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if o.verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func (o *runOptions) run(cmd *cobra.Command) error {
	runners, err := selectSpecies(o.species)
	if err != nil {
		return err
	}
	o.cfg.MeasureUlp = o.ulpStats
	if err := o.cfg.Validate(); err != nil {
		return err
	}
	log := o.logger(cmd.ErrOrStderr())
	pool := workerpool.New(o.cfg.Workers)
	defer pool.Close()

	opts := []conformance.Option{conformance.WithLogger(log), conformance.WithPool(pool)}
	if len(o.ops) > 0 {
		opts = append(opts, conformance.WithOperators(o.ops...))
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range runners {
		log.WithField("species", r.name).Info("checking species")
		report, err := r.run(cmd.Context(), o.cfg, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
		if len(report.Results) == 0 {
			log.WithField("species", r.name).Warn("no scenario matches the operator filter")
		}
		n := o.cfg.BufferLength(r.bits, r.lanes)
		o.printReport(out, r, n, report)
		failed += report.Failed()
	}
	if failed > 0 {
		return errMismatch
	}
	return nil
}

func (o *runOptions) printReport(w io.Writer, r speciesRunner, elements int, report *conformance.Report) {
	fmt.Fprintf(w, "%s: %d lanes, %s elements per buffer (%s)\n", r.name, r.lanes,
		humanize.Comma(int64(elements)), humanize.IBytes(uint64(elements*r.bits/r.lanes/8)))

	title := cases.Title(language.English)
	groups := report.ByCategory()
	categories := lo.Keys(groups)
	slices.Sort(categories)
	for _, c := range categories {
		results := groups[c]
		bad := lo.CountBy(results, func(res conformance.Result) bool { return !res.Passed() })
		fmt.Fprintf(w, "  %-16s %8s passed %6s failed\n", title.String(c),
			humanize.Comma(int64(len(results)-bad)), humanize.Comma(int64(bad)))
	}
	if o.ulpStats {
		st := report.UlpStats()
		fmt.Fprintf(w, "  ulp error: %s samples, mean %.4f, stddev %.4f, p99 %.4f, max %.4f\n",
			humanize.Comma(int64(st.Samples)), st.Mean, st.StdDev, st.P99, st.Max)
	}

	failures := report.Failures()
	for _, f := range lo.Slice(failures, 0, maxListedFailures) {
		fmt.Fprintf(w, "  FAIL %s: %v\n", f.Scenario, f.Err)
	}
	if extra := len(failures) - maxListedFailures; extra > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", extra)
	}
	status := "ok"
	if len(failures) > 0 {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s %s: %d of %d scenarios passed in %s\n", status, r.name,
		report.Passed(), len(report.Results), report.Duration().Round(time.Millisecond))
}
