package cta

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/ajroetker/go-lbs/cta/contrib/workerpool"
)

// Grid launches tiles with a fixed tile shape.
type Grid struct {
	params Params
	pool   *workerpool.Pool
	log    zerolog.Logger
}

// Option configures a Grid.
type Option func(*Grid)

// WithPool distributes tiles over pool. Without a pool, tiles run one after
// another on the launching goroutine (lanes of a tile still run concurrently).
func WithPool(pool *workerpool.Pool) Option {
	return func(g *Grid) {
		g.pool = pool
	}
}

// WithLogger sets the logger used for launch diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Grid) {
		g.log = log
	}
}

// NewGrid returns a grid launching tiles of shape params.
func NewGrid(params Params, opts ...Option) (*Grid, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{params: params, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Params returns the tile shape of the grid.
func (g *Grid) Params() Params {
	return g.params
}

// Pool returns the worker pool tiles run on, or nil.
func (g *Grid) Pool() *workerpool.Pool {
	return g.pool
}

// Logger returns the grid's logger.
func (g *Grid) Logger() *zerolog.Logger {
	return &g.log
}

// Lane is the handle a lane uses to identify itself and synchronize with the
// rest of its tile. A Lane must not be used outside the body it was passed to.
type Lane struct {
	tid     int
	tile    int
	params  Params
	barrier *Barrier
}

// Tid returns the lane index in [0, NT).
func (l *Lane) Tid() int {
	return l.tid
}

// Tile returns the index of the tile the lane belongs to.
func (l *Lane) Tile() int {
	return l.tile
}

// Params returns the tile shape.
func (l *Lane) Params() Params {
	return l.params
}

// Sync is the tile-wide barrier: it returns once every lane of the tile has
// called it.
func (l *Lane) Sync() {
	l.barrier.Wait()
}

// Launch runs numTiles tiles. For each tile, setup creates the tile-scoped
// shared state, then NT lanes run body concurrently against it. Launch
// returns when every tile has finished.
//
// A panic in any lane breaks the tile's barrier, so the remaining lanes
// unwind, and is re-raised by Launch.
func Launch[S any](g *Grid, numTiles int, setup func(tile int) *S, body func(l *Lane, shared *S)) {
	if numTiles <= 0 {
		return
	}
	start := time.Now()

	run := func(tile int) {
		runTile(g.params, tile, setup(tile), body)
	}
	if g.pool != nil {
		g.pool.ForEachTile(numTiles, run)
	} else {
		for tile := range numTiles {
			run(tile)
		}
	}

	g.log.Debug().
		Int("tiles", numTiles).
		Int("nt", g.params.NT).
		Int("vt", g.params.VT).
		Dur("elapsed", time.Since(start)).
		Msg("launch complete")
}

func runTile[S any](p Params, tile int, shared *S, body func(*Lane, *S)) {
	barrier := NewBarrier(p.NT)

	// The first recorded panic is the one that broke the barrier; the
	// ErrBarrierBroken panics it triggers in other lanes come later.
	var pc panics.Catcher
	var wg conc.WaitGroup
	for tid := range p.NT {
		lane := &Lane{tid: tid, tile: tile, params: p, barrier: barrier}
		wg.Go(func() {
			pc.Try(func() {
				body(lane, shared)
			})
			if pc.Recovered() != nil {
				barrier.Break()
			}
		})
	}
	wg.Wait()
	pc.Repanic()
}

// Iterate calls fn for i in [0, n). It is the fixed trip-count loop used for
// per-lane register arrays: every lane runs the same number of iterations.
func Iterate(n int, fn func(i int)) {
	for i := range n {
		fn(i)
	}
}
