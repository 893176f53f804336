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

// Package search implements merge-path searches over two ordered sequences.
//
// Merging A and B can be pictured as a monotone path through an
// |A| x |B| grid. Cross-diagonal d is the set of grid points (i, d-i); the
// merge path crosses each cross-diagonal exactly once, and the A coordinate of
// that crossing says how many elements of A precede the d-th output of the
// merge. MergePath finds the crossing with a binary search along the
// diagonal, and Partitions finds one crossing per tile boundary so that every
// tile of a grid launch can merge its share independently.
//
// # Bounds
//
// Ties between an A key and a B key are broken by the Bounds policy:
//   - Lower: equal keys take A first.
//   - Upper: equal keys take B first, so A advances only while strictly
//     less than B.
//
// Load-balancing searches use Upper with A the counting sequence of output
// positions and B the segment boundaries: output position p belongs to the
// last segment whose boundary is <= p.
package search
