// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs chunked buffer work on a fixed set of persistent
// goroutines. A Pool is created once per conformance run and shared by
// every scenario, so each scenario pays only for a channel send per
// worker.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ForEachChunk(len(buf), lanes, func(off int) {
//	    hwy.FromSlice(s, buf, off).IntoSlice(out, off)
//	})
//
// A panic raised by fn on a worker is re-raised on the goroutine that
// called ParallelFor or ForEachChunk once every worker has finished.
package workerpool

import (
	"runtime"
	"sync"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem

	// mu guards closed and the work channel: senders hold it shared,
	// Close holds it exclusively.
	mu     sync.RWMutex
	closed bool
}

type workItem struct {
	fn    func()
	batch *batch
}

// batch tracks one ParallelFor call and the first panic any of its items
// raised.
type batch struct {
	wg        sync.WaitGroup
	panicOnce sync.Once
	panicked  any
}

func (b *batch) run(fn func()) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			b.panicOnce.Do(func() { b.panicked = r })
		}
	}()
	fn()
}

func (b *batch) wait() {
	b.wg.Wait()
	if b.panicked != nil {
		panic(b.panicked)
	}
}

// New creates a new worker pool with the specified number of workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.batch.run(item.fn)
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times, or concurrently with ParallelFor, is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.workC)
	}
}

// ParallelFor splits [0, n) into at most NumWorkers contiguous ranges and
// calls fn(start, end) for each. It blocks until all ranges are done. A
// closed pool runs fn(0, n) on the caller.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		fn(0, n)
		return
	}
	size := (n + workers - 1) / workers
	b := &batch{}
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		b.wg.Add(1)
		p.workC <- workItem{
			fn:    func() { fn(start, end) },
			batch: b,
		}
	}
	p.mu.RUnlock()
	b.wait()
}

// ForEachChunk calls fn with the offset of every whole chunk of the given
// size in a buffer of length elements. A trailing partial chunk is
// skipped. Chunks sharing a worker are visited in ascending order.
func (p *Pool) ForEachChunk(length, chunk int, fn func(off int)) {
	if chunk <= 0 {
		return
	}
	p.ParallelFor(length/chunk, func(start, end int) {
		for k := start; k < end; k++ {
			fn(k * chunk)
		}
	})
}
