package cta

import (
	"errors"
	"sync"
)

// ErrBarrierBroken is the panic value raised in lanes blocked on (or arriving
// at) a barrier after Break was called.
var ErrBarrierBroken = errors.New("cta: barrier broken")

// Barrier is a reusable group-wide synchronization point for a fixed number
// of parties. Each call to Wait blocks until all parties of the current
// generation have arrived, then the barrier resets for the next generation.
type Barrier struct {
	mu      sync.Mutex
	cond    sync.Cond
	parties int
	waiting int
	gen     uint64
	broken  bool
}

// NewBarrier returns a barrier for parties goroutines.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond.L = &b.mu
	return b
}

// Parties returns the number of goroutines that must arrive per generation.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until every party has called Wait for the current generation.
// Writes made by any party before Wait are visible to every party after it.
func (b *Barrier) Wait() {
	b.mu.Lock()
	if b.broken {
		b.mu.Unlock()
		panic(ErrBarrierBroken)
	}
	gen := b.gen
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.gen++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for gen == b.gen && !b.broken {
		b.cond.Wait()
	}
	broken := gen == b.gen
	b.mu.Unlock()
	if broken {
		panic(ErrBarrierBroken)
	}
}

// Break releases all current and future waiters by panicking them with
// ErrBarrierBroken. It is used when one party can no longer arrive.
func (b *Barrier) Break() {
	b.mu.Lock()
	b.broken = true
	b.cond.Broadcast()
	b.mu.Unlock()
}
