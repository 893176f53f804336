// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 101
	results := make([]int, n)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestForEachTile(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 257
	visits := make([]atomic.Int32, n)
	pool.ForEachTile(n, func(tile int) {
		visits[tile].Add(1)
	})

	for i := range n {
		if got := visits[i].Load(); got != 1 {
			t.Errorf("tile %d visited %d times, want 1", i, got)
		}
	}
}

func TestForEachTileSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	var count atomic.Int32
	pool.ForEachTile(3, func(tile int) {
		count.Add(1)
	})
	assert.Equal(t, int32(3), count.Load())
}

func TestZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) { called = true })
	pool.ForEachTile(0, func(tile int) { called = true })
	assert.False(t, called, "zero-length operations should not call fn")
}

func TestPanicPropagates(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	require.Panics(t, func() {
		pool.ForEachTile(64, func(tile int) {
			if tile == 17 {
				panic("tile 17")
			}
		})
	})

	// Workers survive the panic.
	var count atomic.Int32
	pool.ForEachTile(64, func(tile int) { count.Add(1) })
	assert.Equal(t, int32(64), count.Load())
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)
	pool.ForEachTile(n, func(tile int) {
		results[tile] = tile * 2
	})

	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func BenchmarkForEachTile(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	const n = 1000
	sink := make([]int, n)
	b.ResetTimer()
	for range b.N {
		pool.ForEachTile(n, func(tile int) {
			sink[tile] += tile
		})
	}
}
