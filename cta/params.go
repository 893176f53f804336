package cta

import (
	"errors"
	"fmt"
)

// MaxVT is the largest supported per-lane work width. The serial merge of a
// lane takes VT+1 steps and records one flag bit per step in a uint64.
const MaxVT = 63

// DefaultNT is the default number of lanes per tile.
const DefaultNT = 128

var (
	// ErrInvalidParams is returned by Params.Validate.
	ErrInvalidParams = errors.New("cta: invalid launch parameters")
)

// Params are the compile-time constants of a tile launch.
type Params struct {
	// NT is the number of lanes in a tile.
	NT int
	// VT is the number of items owned by each lane.
	VT int
}

// NV returns the number of items covered by one tile.
func (p Params) NV() int {
	return p.NT * p.VT
}

// Validate checks that p describes a launchable tile shape.
func (p Params) Validate() error {
	if p.NT < 1 {
		return fmt.Errorf("%w: NT=%d, want >= 1", ErrInvalidParams, p.NT)
	}
	if p.VT < 1 || p.VT > MaxVT {
		return fmt.Errorf("%w: VT=%d, want in [1, %d]", ErrInvalidParams, p.VT, MaxVT)
	}
	return nil
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("nt=%d vt=%d nv=%d", p.NT, p.VT, p.NV())
}

// DefaultParams returns DefaultNT lanes and a VT chosen so that the VT+1
// serial-merge steps of a lane span one vector register of int32 values on
// the current CPU.
func DefaultParams() Params {
	vt := MaxLanes[int32]() - 1
	vt = max(3, min(vt, 15))
	return Params{NT: DefaultNT, VT: vt}
}
