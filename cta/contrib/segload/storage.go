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
	"fmt"
	"unsafe"

	"github.com/ajroetker/go-lbs/cta"
)

// Storage is the tile-shared union buffer of Load.
type Storage struct {
	words    []uint64
	elemSize int
	slots    int
}

// SizeOf returns the size in bytes of T.
func SizeOf[T cta.Lanes]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// NewStorage allocates a buffer for tiles of nv outputs that can hold any of
// the element sizes given. A tile's widened segment range spans at most
// nv+2 segments, so that is the slot count.
func NewStorage(nv int, elemSizes ...int) *Storage {
	elemSize := 0
	for _, size := range elemSizes {
		elemSize = max(elemSize, size)
	}
	slots := nv + 2
	// uint64 words keep the buffer aligned for every element type.
	return &Storage{
		words:    make([]uint64, (elemSize*slots+7)/8),
		elemSize: elemSize,
		slots:    slots,
	}
}

// ElemSize returns the widest element size the storage can hold.
func (s *Storage) ElemSize() int {
	return s.elemSize
}

// Slots returns the number of elements the storage holds per field.
func (s *Storage) Slots() int {
	return s.slots
}

// view reinterprets the buffer as a View[T] whose first element has index base.
func view[T cta.Lanes](s *Storage, base int) cta.View[T] {
	if size := SizeOf[T](); size > s.elemSize {
		panic(fmt.Sprintf("segload: %d-byte element does not fit %d-byte storage", size, s.elemSize))
	}
	var data []T
	if len(s.words) > 0 {
		data = unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(s.words))), s.slots)
	}
	return cta.NewView(data, base)
}
