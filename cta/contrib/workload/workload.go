// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workload generates synthetic segmented workloads: boundary arrays
// whose segment lengths follow a chosen distribution, plus summary statistics
// describing how irregular they are.
package workload

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ajroetker/go-lbs/cta/contrib/scan"
)

// Distribution names a segment-length distribution.
type Distribution string

const (
	// Poisson draws lengths from a Poisson distribution with the given mean.
	Poisson Distribution = "poisson"
	// Uniform draws lengths uniformly from [0, 2*mean].
	Uniform Distribution = "uniform"
)

// ErrInvalidSpec is returned by Generate for unusable specs.
var ErrInvalidSpec = errors.New("workload: invalid spec")

// Spec describes a workload.
type Spec struct {
	Segments      int          `mapstructure:"segments"`
	MeanLength    float64      `mapstructure:"meanLength"`
	Distribution  Distribution `mapstructure:"distribution"`
	EmptyFraction float64      `mapstructure:"emptyFraction"`
	Seed          uint64       `mapstructure:"seed"`
}

// Workload is a generated segmented workload.
type Workload struct {
	Lengths  []int
	Segments []int
	Count    int
}

// Generate draws a workload. The same spec always produces the same workload.
func Generate(spec Spec) (*Workload, error) {
	if spec.Segments < 1 {
		return nil, fmt.Errorf("%w: segments=%d, want >= 1", ErrInvalidSpec, spec.Segments)
	}
	if spec.MeanLength < 0 {
		return nil, fmt.Errorf("%w: meanLength=%g, want >= 0", ErrInvalidSpec, spec.MeanLength)
	}
	if spec.EmptyFraction < 0 || spec.EmptyFraction > 1 {
		return nil, fmt.Errorf("%w: emptyFraction=%g, want in [0, 1]", ErrInvalidSpec, spec.EmptyFraction)
	}

	src := rand.NewPCG(spec.Seed, spec.Seed^0x9e3779b97f4a7c15)
	var draw func() float64
	switch spec.Distribution {
	case Poisson, "":
		if spec.MeanLength == 0 {
			draw = func() float64 { return 0 }
		} else {
			draw = distuv.Poisson{Lambda: spec.MeanLength, Src: src}.Rand
		}
	case Uniform:
		draw = distuv.Uniform{Min: 0, Max: 2 * spec.MeanLength, Src: src}.Rand
	default:
		return nil, fmt.Errorf("%w: unknown distribution %q", ErrInvalidSpec, spec.Distribution)
	}
	empty := rand.New(rand.NewPCG(spec.Seed+1, spec.Seed))

	lengths := make([]int, spec.Segments)
	for i := range lengths {
		n := int(math.Round(draw()))
		if empty.Float64() < spec.EmptyFraction {
			n = 0
		}
		lengths[i] = n
	}
	segments, count := scan.ExclusiveSum(lengths)
	return &Workload{Lengths: lengths, Segments: segments, Count: count}, nil
}

// Stats summarizes segment lengths.
type Stats struct {
	Segments int
	Empty    int
	Count    int
	Mean     float64
	StdDev   float64
	Max      float64
	P50      float64
	P99      float64
}

// Summarize computes statistics over lengths.
func Summarize(lengths []int) Stats {
	s := Stats{Segments: len(lengths)}
	if len(lengths) == 0 {
		return s
	}
	x := make([]float64, len(lengths))
	for i, n := range lengths {
		x[i] = float64(n)
		if n == 0 {
			s.Empty++
		}
	}
	s.Count = int(floats.Sum(x))
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		s.StdDev = 0
	}
	s.Max = floats.Max(x)

	slices.Sort(x)
	s.P50 = stat.Quantile(0.5, stat.Empirical, x, nil)
	s.P99 = stat.Quantile(0.99, stat.Empirical, x, nil)
	return s
}

// Imbalance is the ratio of the longest segment to the mean length: the
// slowdown one-lane-per-segment scheduling suffers relative to an even split.
func (s Stats) Imbalance() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.Max / s.Mean
}
