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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-lbs/cta"
	"github.com/ajroetker/go-lbs/cta/contrib/search"
)

// placeAll runs Place on every lane of one tile and returns the placements
// by lane.
func placeAll(t *testing.T, params cta.Params, tile, count int, segments []int) []Placement {
	t.Helper()
	g, err := cta.NewGrid(params)
	require.NoError(t, err)

	partitions := search.LoadBalancePartitions(count, segments, params.NV(), nil)
	require.Less(t, tile, len(partitions)-1)
	rng := cta.ComputeMergeRange(count, len(segments), tile, params.NV(), partitions[tile], partitions[tile+1])

	placements := make([]Placement, params.NT)
	cta.Launch(g, 1,
		func(int) *Storage { return NewStorage(params) },
		func(l *cta.Lane, s *Storage) {
			bShared := cta.NewView(s.Indices, 0).Slice(rng.ACount())
			placements[l.Tid()] = Place(l, rng, count, segments, bShared)
		})
	return placements
}

func TestPlaceWholeDomain(t *testing.T) {
	placements := placeAll(t, cta.Params{NT: 4, VT: 3}, 0, 7, []int{0, 3, 3, 7})

	want := []struct{ a, b int }{
		{0, -1}, // diagonal 0: nothing merged yet
		{2, 0},  // diagonal 3: b0 a0 a1
		{3, 2},  // diagonal 6: b0 a0 a1 a2 b1 b2
		{6, 2},  // diagonal 9: ... a3 a4 a5
	}
	for tid, p := range placements {
		assert.Equal(t, cta.MergeRange{ABegin: 0, AEnd: 7, BBegin: 0, BEnd: 4}, p.Range, "lane %d", tid)
		assert.Equal(t, want[tid].a, p.AIndex, "lane %d AIndex", tid)
		assert.Equal(t, want[tid].b, p.BIndex, "lane %d BIndex", tid)
	}
}

func TestPlaceWidensBothEnds(t *testing.T) {
	// Tiles of 4 diagonals over b0 a0 a1 a2 | b1 b2 a3 a4 | a5 a6 b3.
	// Tile 1 covers outputs [3, 5) and segments [1, 3); it loads segment 0
	// before and segment 3 after.
	placements := placeAll(t, cta.Params{NT: 2, VT: 2}, 1, 7, []int{0, 3, 3, 7})
	for tid, p := range placements {
		assert.Equal(t, cta.MergeRange{ABegin: 3, AEnd: 5, BBegin: 0, BEnd: 4}, p.Range, "lane %d", tid)
	}
	// Lane 0 starts after the preceding boundary: diagonal 1 of the loaded
	// merge b0 | b1 b2 a3 a4, so it starts on segment 0 with no output merged.
	assert.Equal(t, 3, placements[0].AIndex)
	assert.Equal(t, 0, placements[0].BIndex)
	// Lane 1 starts at diagonal 3: b0 b1 b2 consumed.
	assert.Equal(t, 3, placements[1].AIndex)
	assert.Equal(t, 2, placements[1].BIndex)
}

func TestPlaceNoWideningAtEdges(t *testing.T) {
	// Tile 0 cannot load a preceding boundary and the last tile has no
	// outputs left, so neither widens.
	first := placeAll(t, cta.Params{NT: 2, VT: 2}, 0, 7, []int{0, 3, 3, 7})
	assert.Equal(t, 0, first[0].Range.BBegin)

	last := placeAll(t, cta.Params{NT: 2, VT: 2}, 2, 7, []int{0, 3, 3, 7})
	assert.Equal(t, 4, last[0].Range.BEnd)
	assert.Equal(t, 2, last[0].Range.BBegin, "tile 2 still loads its preceding boundary")
}
