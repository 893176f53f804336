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

// Package loadbalance maps the outputs of a segmented operation onto tiles.
//
// The input is a CSR-style boundary array: segments[i] is the first output
// index of segment i, the array is non-decreasing, and empty segments repeat a
// boundary. Every output position p in [0, count) belongs to the last segment
// whose boundary is <= p, and its rank is p - segments[seg].
//
// A launch assigns each tile NV consecutive cross-diagonals of the
// upper-bound merge of the output positions with the boundaries, so tiles get
// equal work no matter how the segment lengths are distributed. Inside a tile:
//
//  1. Place loads the tile's slice of the boundary array into shared memory
//     and runs a merge-path search so each lane knows where its serial merge
//     starts.
//  2. LoadBalance runs the VT+1 step serial merge that writes the segment id
//     of every output in the tile, then hands every lane its outputs in
//     strided order as (index, segment, rank) triples.
//
// The grid-level drivers (Search, Transform, IntervalExpand, IntervalGather,
// Inspect) compute partitions, launch the tiles and collect results.
//
// Inputs are trusted: a boundary array that is not sorted, or partitions that
// do not belong to it, produce undefined results or an index panic.
package loadbalance
