// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for running
// the tiles of a grid launch. A Pool is created once and reused across many
// launches, so per-launch cost is one channel send per worker rather than one
// goroutine per tile.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ForEachTile(numTiles, func(tile int) {
//	    runTile(tile)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc/panics"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused until Close.
type Pool struct {
	numWorkers int
	workC      chan job
	closeOnce  sync.Once
	closed     atomic.Bool
}

// job is one worker's share of a parallel operation.
type job struct {
	fn      func()
	catcher *panics.Catcher
	done    *sync.WaitGroup
}

// New creates a worker pool with numWorkers workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan job, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for j := range p.workC {
		// A panicking job must not take the worker down with it; the panic is
		// handed back to the goroutine that submitted the job.
		j.catcher.Try(j.fn)
		j.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes; later calls run inline.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// submit runs fns on the workers, blocks until all return, and re-raises the
// first panic on the calling goroutine.
func (p *Pool) submit(fns []func()) {
	var pc panics.Catcher
	var wg sync.WaitGroup
	wg.Add(len(fns))
	for _, fn := range fns {
		p.workC <- job{fn: fn, catcher: &pc, done: &wg}
	}
	wg.Wait()
	pc.Repanic()
}

// ParallelFor splits [0, n) into one contiguous chunk per worker and calls fn
// with each chunk's bounds. Blocks until all chunks complete.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	fns := make([]func(), 0, workers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		fns = append(fns, func() { fn(start, end) })
	}
	p.submit(fns)
}

// ForEachTile calls fn once for every tile in [0, numTiles). Workers claim
// tiles with an atomic counter, so tiles of uneven cost still balance.
// Blocks until all tiles complete.
func (p *Pool) ForEachTile(numTiles int, fn func(tile int)) {
	if numTiles <= 0 {
		return
	}

	workers := min(p.numWorkers, numTiles)
	if workers == 1 || p.closed.Load() {
		for tile := range numTiles {
			fn(tile)
		}
		return
	}

	var next atomic.Int64
	claim := func() {
		for {
			tile := int(next.Add(1)) - 1
			if tile >= numTiles {
				return
			}
			fn(tile)
		}
	}
	fns := make([]func(), workers)
	for i := range fns {
		fns[i] = claim
	}
	p.submit(fns)
}
