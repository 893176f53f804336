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

package loadbalance

import (
	"github.com/ajroetker/go-lbs/cta"
	"github.com/ajroetker/go-lbs/cta/contrib/search"
	"github.com/ajroetker/go-lbs/cta/contrib/segload"
)

// tileShared is the shared memory of one tile of a driver launch. The value
// buffer is only touched after LoadBalance has returned, so the two never
// hold live data at the same time.
type tileShared struct {
	lbs    *Storage
	values *segload.Storage
}

// launch partitions the work and runs body on every lane of every tile with
// that lane's load-balance result. valueSizes sizes the segment value buffer.
func launch(g *cta.Grid, count int, segments []int, valueSizes []int,
	body func(l *cta.Lane, r *Result, shared *tileShared)) {
	p := g.Params()
	partitions := search.LoadBalancePartitions(count, segments, p.NV(), g.Pool())
	numTiles := len(partitions) - 1

	g.Logger().Debug().
		Int("count", count).
		Int("segments", len(segments)).
		Int("tiles", numTiles).
		Msg("load-balance launch")

	cta.Launch(g, numTiles,
		func(tile int) *tileShared {
			s := &tileShared{lbs: NewStorage(p)}
			if len(valueSizes) > 0 {
				s.values = segload.NewStorage(p.NV(), valueSizes...)
			}
			return s
		},
		func(l *cta.Lane, shared *tileShared) {
			r := LoadBalance(l, count, segments, partitions, shared.lbs)
			body(l, &r, shared)
		})
}

// Inspect calls fn with every lane's Result. fn runs concurrently from the
// lanes of every tile.
func Inspect(g *cta.Grid, count int, segments []int, fn func(tile, tid int, r Result)) {
	launch(g, count, segments, nil, func(l *cta.Lane, r *Result, _ *tileShared) {
		fn(l.Tile(), l.Tid(), *r)
	})
}

// Transform calls fn(index, segment, rank) once for every output position in
// [0, count). Calls are concurrent and in no particular order.
func Transform(g *cta.Grid, count int, segments []int, fn func(index, seg, rank int)) {
	launch(g, count, segments, nil, func(_ *cta.Lane, r *Result, _ *tileShared) {
		for i := range r.Indices {
			if r.Valid(i) {
				fn(r.Indices[i], r.Segments[i], r.Ranks[i])
			}
		}
	})
}

// Search returns the segment id of every output position in [0, count).
func Search(g *cta.Grid, count int, segments []int) []int {
	out := make([]int, count)
	Transform(g, count, segments, func(index, seg, _ int) {
		out[index] = seg
	})
	return out
}

// IntervalExpand repeats values[i] once per output of segment i:
// out[p] = values[seg(p)].
func IntervalExpand[T cta.Lanes](g *cta.Grid, count int, segments []int, values []T) []T {
	out := make([]T, count)
	vt := g.Params().VT
	launch(g, count, segments, []int{segload.SizeOf[T]()}, func(l *cta.Lane, r *Result, shared *tileShared) {
		gathered := make([]T, vt)
		segload.Load(l, r.Placement.Range.BRange(), r.Segments, shared.values,
			segload.Gather(values, gathered))
		for i := range vt {
			if r.Valid(i) {
				out[r.Indices[i]] = gathered[i]
			}
		}
	})
	return out
}

// IntervalGather copies, for each segment i, the run of input that starts at
// starts[i] and is as long as the segment: out[p] = input[starts[seg(p)] + rank(p)].
func IntervalGather[T cta.Lanes](g *cta.Grid, count int, segments []int, starts []int, input []T) []T {
	out := make([]T, count)
	vt := g.Params().VT
	launch(g, count, segments, []int{segload.SizeOf[int]()}, func(l *cta.Lane, r *Result, shared *tileShared) {
		base := make([]int, vt)
		segload.Load(l, r.Placement.Range.BRange(), r.Segments, shared.values,
			segload.Gather(starts, base))
		for i := range vt {
			if r.Valid(i) {
				out[r.Indices[i]] = input[base[i]+r.Ranks[i]]
			}
		}
	})
	return out
}
