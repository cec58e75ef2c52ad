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
	"context"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/workerpool"
)

type options struct {
	logger logrus.FieldLogger
	pool   *workerpool.Pool
	ops    []string
}

// Option configures a Suite.
type Option func(*options)

// WithLogger sets the logger scenario progress and mismatches are reported
// to. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithPool runs chunks on p instead of a pool owned by each Run.
func WithPool(p *workerpool.Pool) Option {
	return func(o *options) { o.pool = p }
}

// WithOperators restricts the suite to scenarios of the named operators,
// compared case-insensitively.
func WithOperators(names ...string) Option {
	return func(o *options) { o.ops = append(o.ops, names...) }
}

// Suite is the full conformance catalog for one species.
type Suite[T hwy.Floats] struct {
	species *hwy.Species[T]
	cfg     Config
	opts    options
}

// NewSuite returns the catalog for s under cfg.
func NewSuite[T hwy.Floats](s *hwy.Species[T], cfg Config, opts ...Option) *Suite[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}
	return &Suite[T]{species: s, cfg: cfg, opts: o}
}

// Species returns the species the suite exercises.
func (su *Suite[T]) Species() *hwy.Species[T] {
	return su.species
}

// Scenarios returns every scenario the suite runs, in run order.
func (su *Suite[T]) Scenarios() []Scenario[T] {
	seed := su.cfg.Seed
	all := lo.Flatten([][]Scenario[T]{
		smokeScenarios[T](),
		unaryScenarios[T](seed),
		binaryScenarios[T](seed),
		ternaryScenarios[T](seed),
		reductionScenarios[T](seed),
		compareScenarios[T](seed),
		rearrangeScenarios[T](seed),
		sliceScenarios[T](seed),
		gatherScenarios[T](seed),
		memoryScenarios[T](seed),
	})
	if len(su.opts.ops) == 0 {
		return all
	}
	return lo.Filter(all, func(sc Scenario[T], _ int) bool {
		return lo.ContainsBy(su.opts.ops, func(op string) bool {
			return strings.EqualFold(op, sc.Op)
		})
	})
}

// Run executes every scenario and returns their results. A mismatch or a
// precondition violation fails only its own scenario; Run itself fails
// when the config is invalid or ctx is done, returning the results so far.
func (su *Suite[T]) Run(ctx context.Context) (*Report, error) {
	if err := su.cfg.Validate(); err != nil {
		return nil, err
	}
	pool := su.opts.pool
	if pool == nil {
		pool = workerpool.New(su.cfg.Workers)
		defer pool.Close()
	}
	lanes := su.species.NumLanes()
	n := su.cfg.BufferLength(su.species.VectorBits(), lanes)
	report := &Report{Species: su.species.Name()}

	for i, sc := range su.Scenarios() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		log := su.opts.logger.WithFields(logrus.Fields{
			"species":  su.species.Name(),
			"scenario": sc.Name(),
			"op":       sc.Op,
		})
		log.Debug("running scenario")

		x := &exec[T]{
			s:       su.species,
			lanes:   lanes,
			n:       n,
			iters:   su.cfg.Iterations,
			pool:    pool,
			rng:     newRand(su.cfg.Seed, uint64(i)),
			measure: su.cfg.MeasureUlp,
		}
		start := time.Now()
		var err error
		if perr := hwy.Catch(func() { err = sc.run(x) }); perr != nil {
			err = perr
		}
		res := Result{
			Species:  su.species.Name(),
			Scenario: sc.Name(),
			Op:       sc.Op,
			Category: sc.Category,
			Err:      err,
			Elements: n,
			Duration: time.Since(start),
			Ulp:      x.ulp,
		}
		if err != nil {
			log.WithError(err).Warn("scenario failed")
		} else {
			log.WithField("elapsed", res.Duration).Debug("scenario passed")
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}
