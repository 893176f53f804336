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

// Package segload gathers per-segment values for the outputs of a tile.
//
// Once every lane knows the segment id of each of its slots (see
// loadbalance.LoadBalance), values stored per segment (one entry per segment,
// such as row pointers or interval start offsets) can be fetched for every
// slot. Lanes would otherwise read the same segment value many times from the
// source array; instead the tile copies the slice of segments it spans into
// shared memory once, and each lane reads its slot values from there.
//
// Several value arrays of different element types can be loaded in one call.
// They share one untyped buffer sized for the widest type and are processed
// one field after another, so the buffer is reused rather than partitioned.
package segload
