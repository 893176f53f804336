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

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInclusiveSum(t *testing.T) {
	tests := []struct {
		name     string
		input    []int64
		expected []int64
	}{
		{
			name:     "simple",
			input:    []int64{1, 2, 3, 4},
			expected: []int64{1, 3, 6, 10},
		},
		{
			name:     "single",
			input:    []int64{42},
			expected: []int64{42},
		},
		{
			name:     "zeros",
			input:    []int64{0, 0, 0, 0},
			expected: []int64{0, 0, 0, 0},
		},
		{
			name:     "empty",
			input:    []int64{},
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InclusiveSum(tt.input)
			assert.Equal(t, tt.expected, tt.input)
		})
	}
}

func TestExclusiveSum(t *testing.T) {
	offsets, total := ExclusiveSum([]uint32{3, 0, 4, 0})
	assert.Equal(t, []int{0, 3, 3, 7}, offsets)
	assert.Equal(t, 7, total)

	offsets, total = ExclusiveSum([]int{})
	assert.Empty(t, offsets)
	assert.Zero(t, total)
}

func TestLengthsRoundTrip(t *testing.T) {
	lengths := []int{3, 0, 4, 0, 1}
	offsets, total := ExclusiveSum(lengths)
	assert.Equal(t, lengths, Lengths(offsets, total))
}
