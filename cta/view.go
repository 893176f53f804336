package cta

// View is an offset-indexed window over a backing slice.
//
// A View with base b over data d maps index i to d[i-b], so it is valid for
// i in [b, b+len(d)). Tile code uses it to address shared scratch memory
// directly by a global index (an output position or a segment id) without
// re-basing every access.
type View[T any] struct {
	data []T
	base int
}

// NewView returns a view whose index base maps to data[0].
func NewView[T any](data []T, base int) View[T] {
	return View[T]{data: data, base: base}
}

// At returns the element at global index i.
func (v View[T]) At(i int) T {
	return v.data[i-v.base]
}

// Set stores x at global index i.
func (v View[T]) Set(i int, x T) {
	v.data[i-v.base] = x
}

// Base returns the first valid global index.
func (v View[T]) Base() int {
	return v.base
}

// Len returns the number of addressable elements.
func (v View[T]) Len() int {
	return len(v.data)
}

// Bounds returns the valid global index range.
func (v View[T]) Bounds() Range {
	return Range{Begin: v.base, End: v.base + len(v.data)}
}

// Rebase returns a view over the same storage in which global index base maps
// to the element that previously had index Base().
func (v View[T]) Rebase(base int) View[T] {
	return View[T]{data: v.data, base: base}
}

// Slice returns a view starting off elements into the backing storage, with
// index 0 mapping to that element.
func (v View[T]) Slice(off int) View[T] {
	return View[T]{data: v.data[off:]}
}
