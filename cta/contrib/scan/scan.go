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

// Package scan builds and inverts segment boundary arrays.
//
// Segmented operations describe their segments either by per-segment lengths
// or by boundaries (the CSR row-pointer form used by package loadbalance).
// An exclusive prefix sum turns lengths into boundaries:
//
//	lengths:    [3 0 4]
//	boundaries: [0 3 3], total 7
package scan

import "github.com/ajroetker/go-lbs/cta"

// InclusiveSum computes the inclusive prefix sum in place.
// Result[i] = data[0] + data[1] + ... + data[i]
//
// Example:
//
//	data := []int{1, 2, 3, 4}
//	InclusiveSum(data)
//	// data = [1, 3, 6, 10]
func InclusiveSum[T cta.Integers | cta.Floats](data []T) {
	var carry T
	for i := range data {
		carry += data[i]
		data[i] = carry
	}
}

// ExclusiveSum returns the exclusive prefix sum of lengths and the sum of
// all lengths. offsets[i] = lengths[0] + ... + lengths[i-1].
//
// Example:
//
//	offsets, total := ExclusiveSum([]int{3, 0, 4})
//	// offsets = [0, 3, 3], total = 7
func ExclusiveSum[T cta.Integers](lengths []T) (offsets []int, total int) {
	offsets = make([]int, len(lengths))
	for i, n := range lengths {
		offsets[i] = total
		total += int(n)
	}
	return offsets, total
}

// Lengths inverts ExclusiveSum: it returns the length of every segment given
// the boundaries and the total output count.
func Lengths(offsets []int, count int) []int {
	lengths := make([]int, len(offsets))
	for i := range offsets {
		end := count
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		lengths[i] = end - offsets[i]
	}
	return lengths
}
