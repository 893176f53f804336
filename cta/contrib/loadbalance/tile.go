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
	"math/bits"

	"github.com/ajroetker/go-lbs/cta"
)

// InvalidRank marks a slot past the end of the tile's outputs. Consumers
// should test for a negative rank rather than this exact value.
const InvalidRank = -1

// Storage is the tile-shared scratch memory of LoadBalance.
type Storage struct {
	// Indices holds the boundary slice during placement, then the segment id
	// of every output in the tile.
	Indices []int
}

// NewStorage allocates storage for tiles of shape p.
func NewStorage(p cta.Params) *Storage {
	return &Storage{Indices: make([]int, p.NV()+2)}
}

// Result is one lane's share of a tile.
type Result struct {
	Placement  Placement
	MergeRange cta.MergeRange

	// MergeFlags has bit i set when step i of the lane's serial merge found an
	// output before the next segment boundary. Only the low VT bits correspond
	// to assigned outputs; bit VT is the lookahead step.
	MergeFlags uint64

	// Slot i of the lane is output Indices[i] = ABegin + NT*i + tid. For
	// valid slots Segments[i] is its segment and Ranks[i] its offset within
	// the segment; other slots have Segments[i] = MergeRange.BBegin and
	// Ranks[i] = InvalidRank.
	Indices  []int
	Segments []int
	Ranks    []int
}

// Valid reports whether slot i holds an output of the tile.
func (r *Result) Valid(i int) bool {
	return r.Ranks[i] >= 0
}

// ValidCount returns the number of valid slots.
func (r *Result) ValidCount() int {
	n := 0
	for i := range r.Ranks {
		if r.Valid(i) {
			n++
		}
	}
	return n
}

// FlagCount returns the number of outputs the lane assigned during its
// serial merge.
func (r *Result) FlagCount() int {
	vt := len(r.Indices)
	return bits.OnesCount64(r.MergeFlags & (1<<vt - 1))
}

// LoadBalance computes the calling lane's (index, segment, rank) triples for
// its tile. partitions holds the upper-bound merge-path partitions of the
// output positions [0, count) with segments, one per tile boundary (see
// search.LoadBalancePartitions).
//
// All lanes of the tile must call LoadBalance together with the same
// storage; the storage may be reused once it returns.
func LoadBalance(l *cta.Lane, count int, segments []int, partitions []int, storage *Storage) Result {
	p := l.Params()
	tile := l.Tile()

	mp0 := partitions[tile]
	mp1 := partitions[tile+1]
	rng := cta.ComputeMergeRange(count, len(segments), tile, p.NV(), mp0, mp1)

	// Outputs occupy the front of the buffer, addressed by output position;
	// boundaries are loaded right after them.
	indices := cta.NewView(storage.Indices, 0)
	aShared := indices.Rebase(rng.ABegin)
	bShared := indices.Slice(rng.ACount())

	placement := Place(l, rng, count, segments, bShared)

	// Address boundaries by segment id.
	bShared = bShared.Rebase(placement.Range.BBegin)

	curItem := placement.AIndex
	curSegment := placement.BIndex
	var flags uint64

	// The last step never assigns an output: it only advances curSegment past
	// the boundary that ends the lane's last output.
	cta.Iterate(p.VT+1, func(i int) {
		pred := curItem < bShared.At(curSegment+1)
		if pred && i < p.VT {
			aShared.Set(curItem, curSegment)
			curItem++
		} else {
			curSegment++
		}
		if pred {
			flags |= 1 << i
		}
	})
	l.Sync()

	res := Result{
		Placement:  placement,
		MergeRange: rng,
		MergeFlags: flags,
		Indices:    make([]int, p.VT),
		Segments:   make([]int, p.VT),
		Ranks:      make([]int, p.VT),
	}
	cta.Iterate(p.VT, func(i int) {
		j := p.NT*i + l.Tid()
		index := rng.ABegin + j
		res.Indices[i] = index
		if j < rng.ACount() {
			seg := aShared.At(index)
			res.Segments[i] = seg
			res.Ranks[i] = index - bShared.At(seg)
		} else {
			res.Segments[i] = rng.BBegin
			res.Ranks[i] = InvalidRank
		}
	})
	l.Sync()

	return res
}
