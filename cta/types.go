package cta

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for pointer-free element types that may be stored in
// untyped tile-shared scratch memory.
type Lanes interface {
	Floats | Integers
}

// Range is the half-open interval [Begin, End).
type Range struct {
	Begin int
	End   int
}

// Count returns End - Begin.
func (r Range) Count() int {
	return r.End - r.Begin
}

// Valid reports whether the range is non-empty.
func (r Range) Valid() bool {
	return r.Begin < r.End
}

// MergeRange is a pair of half-open intervals over two ordered sequences.
// In load-balancing searches A is the implicit sequence of output positions
// and B is the segment boundary array.
type MergeRange struct {
	ABegin, AEnd int
	BBegin, BEnd int
}

// ACount returns the number of A elements in the range.
func (m MergeRange) ACount() int {
	return m.AEnd - m.ABegin
}

// BCount returns the number of B elements in the range.
func (m MergeRange) BCount() int {
	return m.BEnd - m.BBegin
}

// Total returns ACount() + BCount().
func (m MergeRange) Total() int {
	return m.ACount() + m.BCount()
}

// ARange returns the A interval.
func (m MergeRange) ARange() Range {
	return Range{Begin: m.ABegin, End: m.AEnd}
}

// BRange returns the B interval.
func (m MergeRange) BRange() Range {
	return Range{Begin: m.BBegin, End: m.BEnd}
}

// ComputeMergeRange returns the slice of the global merge of A (aCount
// elements) and B (bCount elements) covered by tile. Tile t starts on
// cross-diagonal spacing*t; mp0 and mp1 are the A coordinates where the merge
// path crosses the tile's first and one-past-last diagonals.
func ComputeMergeRange(aCount, bCount, tile, spacing, mp0, mp1 int) MergeRange {
	diag0 := spacing * tile
	diag1 := min(aCount+bCount, diag0+spacing)
	return MergeRange{
		ABegin: mp0,
		AEnd:   mp1,
		BBegin: diag0 - mp0,
		BEnd:   diag1 - mp1,
	}
}
