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
)

// Placement is where a lane starts its serial merge.
type Placement struct {
	// Range is the merge range of the loaded values. Its B interval may extend
	// the tile's B interval by one element in each direction.
	Range cta.MergeRange
	// AIndex is the first output position the lane merges.
	AIndex int
	// BIndex is the segment preceding the lane's first merge step.
	BIndex int
}

// Place loads the boundaries spanned by rng into bShared and finds the start
// of the calling lane's serial merge. bShared must hold at least
// NV + 1 + (1 if rng.BBegin > 0) - rng.ACount() elements; index 0 of the view
// receives the first loaded boundary.
//
// All lanes of the tile must call Place together.
func Place(l *cta.Lane, rng cta.MergeRange, count int, segments []int, bShared cta.View[int]) Placement {
	p := l.Params()
	numSegments := len(segments)

	// Load the boundary preceding the tile so the tile can see the id of the
	// segment its first output belongs to.
	loadPreceding := 0
	if rng.BBegin > 0 {
		loadPreceding = 1
	}
	rng.BBegin -= loadPreceding

	// Load one trailing boundary so a lane can always read the start of the
	// next segment.
	if rng.BEnd < numSegments && rng.AEnd < count {
		rng.BEnd++
	}

	loadCount := rng.BCount()
	fillCount := p.NV() + 1 + loadPreceding - loadCount - rng.ACount()

	// count acts as +inf: no output position reaches it.
	for i := l.Tid(); i < fillCount; i += p.NT {
		bShared.Set(loadCount+i, count)
	}
	for i := l.Tid(); i < loadCount; i += p.NT {
		bShared.Set(i, segments[rng.BBegin+i])
	}
	l.Sync()

	// Skip the preceding boundary when it was loaded; it is not part of the
	// tile's work.
	diag := p.VT*l.Tid() + loadPreceding
	mp := search.MergePath(search.Counting(rng.ABegin), rng.ACount(),
		bShared.At, loadCount+fillCount, diag, search.Upper, search.Less[int])
	l.Sync()

	// BIndex points one segment before the first output to merge: the first
	// merge step advances into the segment before any output is assigned.
	return Placement{
		Range:  rng,
		AIndex: rng.ABegin + mp,
		BIndex: rng.BBegin + (diag - mp) - 1,
	}
}
