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

package segload

import (
	"github.com/ajroetker/go-lbs/cta"
)

// Field is one value array to gather. Each lane builds its own fields, since
// the destinations are per lane.
type Field interface {
	// ElemSize returns the size in bytes of one element.
	ElemSize() int

	load(l *cta.Lane, rng cta.Range, segments []int, storage *Storage)
}

type gather[T cta.Lanes] struct {
	src []T
	dst []T
}

// Gather returns a field that sets dst[i] = src[segments[i]] for each of the
// lane's VT slots. src is indexed by segment id; dst must have VT elements.
func Gather[T cta.Lanes](src, dst []T) Field {
	return gather[T]{src: src, dst: dst}
}

func (g gather[T]) ElemSize() int {
	return SizeOf[T]()
}

func (g gather[T]) load(l *cta.Lane, rng cta.Range, segments []int, storage *Storage) {
	p := l.Params()
	shared := view[T](storage, rng.Begin)

	for j := rng.Begin + l.Tid(); j < rng.End; j += p.NT {
		shared.Set(j, g.src[j])
	}
	l.Sync()

	cta.Iterate(p.VT, func(i int) {
		g.dst[i] = shared.At(segments[i])
	})
	l.Sync()
}

// Load gathers every field for the calling lane's slots. rng is the range of
// segment ids the tile spans (Placement.Range.BRange() of a load-balance
// result) and segments holds the lane's per-slot segment ids; slots whose
// segment lies outside rng are padding and receive unspecified values.
//
// All lanes of the tile must call Load together with the same rng, storage
// and field types in the same order. storage must have been sized for every
// field's element size.
func Load(l *cta.Lane, rng cta.Range, segments []int, storage *Storage, fields ...Field) {
	if len(fields) == 0 {
		return
	}
	fields[0].load(l, rng, segments, storage)
	Load(l, rng, segments, storage, fields[1:]...)
}

// StorageFor allocates storage for tiles of nv outputs able to load fields.
func StorageFor(nv int, fields ...Field) *Storage {
	sizes := make([]int, len(fields))
	for i, f := range fields {
		sizes[i] = f.ElemSize()
	}
	return NewStorage(nv, sizes...)
}
