// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package verify checks the invariants of a load-balancing search launch.
//
// For every tile it checks that the valid slots of all lanes cover exactly
// the tile's output range once, that segment ids never decrease in output
// order, that every rank is index - segments[segment], that the merge flags
// count the valid slots, and that the widened segment range stays inside the
// boundary array. Across tiles it checks that the tiles partition [0, count).
package verify

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/RoaringBitmap/roaring"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-lbs/cta"
	"github.com/ajroetker/go-lbs/cta/contrib/loadbalance"
	"github.com/ajroetker/go-lbs/cta/contrib/search"
)

var (
	// ErrCoverage reports a missing, duplicated or misplaced output.
	ErrCoverage = errors.New("verify: coverage")
	// ErrOrder reports segment ids decreasing in output order.
	ErrOrder = errors.New("verify: segment order")
	// ErrRank reports a wrong rank.
	ErrRank = errors.New("verify: rank")
	// ErrFlags reports merge flags that disagree with the valid slots.
	ErrFlags = errors.New("verify: merge flags")
	// ErrWidening reports a widened segment range outside the boundary array.
	ErrWidening = errors.New("verify: widened range")
)

// Report summarizes a successful check.
type Report struct {
	Tiles   int
	Outputs int
	// MaxSpan is the largest number of boundaries loaded by one tile.
	MaxSpan int
}

// Check launches a load-balancing search of count outputs over segments on g
// and verifies every lane's result. The boundary array must satisfy the
// search's preconditions; Check validates the search, not the input.
func Check(ctx context.Context, g *cta.Grid, count int, segments []int) (Report, error) {
	p := g.Params()
	numTiles := search.NumTiles(count+len(segments), p.NV())

	tiles := make([][]loadbalance.Result, numTiles)
	for i := range tiles {
		tiles[i] = make([]loadbalance.Result, p.NT)
	}
	// Each lane writes its own slot.
	loadbalance.Inspect(g, count, segments, func(tile, tid int, r loadbalance.Result) {
		tiles[tile][tid] = r
	})

	var (
		mu      sync.Mutex
		covered = make([]*roaring.Bitmap, numTiles)
		report  = Report{Tiles: numTiles, Outputs: count}
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for tile, lanes := range tiles {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bm, span, err := checkTile(tile, lanes, segments)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			covered[tile] = bm
			report.MaxSpan = max(report.MaxSpan, span)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Report{}, err
	}

	all := roaring.FastOr(covered...)
	total := lo.SumBy(covered, func(bm *roaring.Bitmap) uint64 { return bm.GetCardinality() })
	if total != all.GetCardinality() {
		return Report{}, fmt.Errorf("%w: tiles overlap (%d outputs claimed, %d distinct)",
			ErrCoverage, total, all.GetCardinality())
	}
	if all.GetCardinality() != uint64(count) {
		return Report{}, fmt.Errorf("%w: %d of %d outputs covered", ErrCoverage, all.GetCardinality(), count)
	}
	return report, nil
}

func checkTile(tile int, lanes []loadbalance.Result, segments []int) (*roaring.Bitmap, int, error) {
	mr := lanes[0].MergeRange
	bm := roaring.New()
	segOf := make([]int, mr.ACount())

	for tid, r := range lanes {
		if r.MergeRange != mr {
			return nil, 0, fmt.Errorf("%w: tile %d lane %d has range %+v, lane 0 has %+v",
				ErrCoverage, tile, tid, r.MergeRange, mr)
		}
		pr := r.Placement.Range
		if pr.BBegin < 0 || pr.BEnd > len(segments) || pr.BBegin > mr.BBegin || pr.BEnd < mr.BEnd {
			return nil, 0, fmt.Errorf("%w: tile %d lane %d loaded %+v for %+v",
				ErrWidening, tile, tid, pr.BRange(), mr.BRange())
		}
		for i, index := range r.Indices {
			if !r.Valid(i) {
				continue
			}
			if index < mr.ABegin || index >= mr.AEnd {
				return nil, 0, fmt.Errorf("%w: tile %d lane %d slot %d: output %d outside %+v",
					ErrCoverage, tile, tid, i, index, mr.ARange())
			}
			if !bm.CheckedAdd(uint32(index)) {
				return nil, 0, fmt.Errorf("%w: tile %d: output %d assigned twice", ErrCoverage, tile, index)
			}
			seg := r.Segments[i]
			if seg < 0 || seg >= len(segments) || r.Ranks[i] != index-segments[seg] ||
				(seg+1 < len(segments) && segments[seg+1] <= index) {
				return nil, 0, fmt.Errorf("%w: tile %d: output %d has segment %d rank %d",
					ErrRank, tile, index, seg, r.Ranks[i])
			}
			segOf[index-mr.ABegin] = seg
		}
	}

	if bm.GetCardinality() != uint64(mr.ACount()) {
		return nil, 0, fmt.Errorf("%w: tile %d: %d of %d outputs assigned",
			ErrCoverage, tile, bm.GetCardinality(), mr.ACount())
	}
	valid := lo.SumBy(lanes, func(r loadbalance.Result) int { return r.ValidCount() })
	flagged := lo.SumBy(lanes, func(r loadbalance.Result) int { return r.FlagCount() })
	if valid != flagged {
		return nil, 0, fmt.Errorf("%w: tile %d: %d flags, %d valid slots", ErrFlags, tile, flagged, valid)
	}
	for i := 1; i < len(segOf); i++ {
		if segOf[i] < segOf[i-1] {
			return nil, 0, fmt.Errorf("%w: tile %d: output %d in segment %d after segment %d",
				ErrOrder, tile, mr.ABegin+i, segOf[i], segOf[i-1])
		}
	}
	return bm, lanes[0].Placement.Range.BCount(), nil
}
