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

package search

import (
	"cmp"

	"github.com/ajroetker/go-lbs/cta/contrib/workerpool"
)

// Bounds selects how ties between A and B are broken.
type Bounds int

const (
	// Lower takes A before an equal B.
	Lower Bounds = iota
	// Upper takes B before an equal A.
	Upper
)

// String returns "lower" or "upper".
func (b Bounds) String() string {
	if b == Upper {
		return "upper"
	}
	return "lower"
}

// Seq is a random-access ordered sequence.
type Seq[T any] func(i int) T

// Counting returns the sequence begin, begin+1, begin+2, ...
func Counting(begin int) Seq[int] {
	return func(i int) int {
		return begin + i
	}
}

// Slice returns s as a Seq.
func Slice[T any](s []T) Seq[T] {
	return func(i int) T {
		return s[i]
	}
}

// Less is the natural ordering comparator.
func Less[T cmp.Ordered](x, y T) bool {
	return x < y
}

// MergePath returns the number of A elements consumed by the first diag
// outputs of the merge of a[0:aCount] and b[0:bCount].
func MergePath[T any](a Seq[T], aCount int, b Seq[T], bCount int, diag int, bounds Bounds, less func(x, y T) bool) int {
	begin := max(0, diag-bCount)
	end := min(diag, aCount)

	for begin < end {
		mid := int(uint(begin+end) >> 1)
		aKey := a(mid)
		bKey := b(diag - 1 - mid)

		var takeA bool
		if bounds == Upper {
			takeA = less(aKey, bKey)
		} else {
			takeA = !less(bKey, aKey)
		}
		if takeA {
			begin = mid + 1
		} else {
			end = mid
		}
	}
	return begin
}

// NumTiles returns the number of tiles of width spacing needed to cover total
// merge outputs.
func NumTiles(total, spacing int) int {
	return (total + spacing - 1) / spacing
}

// Partitions runs one MergePath per tile boundary of a merge split into tiles
// of width spacing. Entry t is the A coordinate where tile t starts; the last
// entry closes the final tile. The result has NumTiles(aCount+bCount,
// spacing)+1 entries. Searches are spread over pool when it is non-nil.
func Partitions[T any](a Seq[T], aCount int, b Seq[T], bCount int, spacing int, bounds Bounds,
	less func(x, y T) bool, pool *workerpool.Pool) []int {
	total := aCount + bCount
	numPartitions := NumTiles(total, spacing) + 1
	mp := make([]int, numPartitions)

	search := func(start, end int) {
		for i := start; i < end; i++ {
			diag := min(spacing*i, total)
			mp[i] = MergePath(a, aCount, b, bCount, diag, bounds, less)
		}
	}
	if pool != nil {
		pool.ParallelFor(numPartitions, search)
	} else {
		search(0, numPartitions)
	}
	return mp
}

// LoadBalancePartitions partitions the upper-bound merge of the output
// positions [0, count) with the segment boundary array into tiles of width
// spacing.
func LoadBalancePartitions(count int, segments []int, spacing int, pool *workerpool.Pool) []int {
	return Partitions(Counting(0), count, Slice(segments), len(segments), spacing, Upper, Less[int], pool)
}
