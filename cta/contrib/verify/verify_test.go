// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-lbs/cta"
	"github.com/ajroetker/go-lbs/cta/contrib/loadbalance"
	"github.com/ajroetker/go-lbs/cta/contrib/workerpool"
	"github.com/ajroetker/go-lbs/cta/contrib/workload"
)

func TestCheckScenarios(t *testing.T) {
	g, err := cta.NewGrid(cta.Params{NT: 4, VT: 2})
	require.NoError(t, err)

	report, err := Check(context.Background(), g, 7, []int{0, 3, 3, 7})
	require.NoError(t, err)
	assert.Equal(t, 7, report.Outputs)
	assert.Equal(t, 2, report.Tiles)

	report, err = Check(context.Background(), g, 0, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Tiles)
	assert.Zero(t, report.Outputs)
}

func TestCheckGeneratedWorkloads(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	specs := []workload.Spec{
		{Segments: 1, MeanLength: 1000, Seed: 1},
		{Segments: 2000, MeanLength: 0.5, EmptyFraction: 0.3, Seed: 2},
		{Segments: 500, MeanLength: 40, Distribution: workload.Uniform, Seed: 3},
		{Segments: 300, MeanLength: 5, EmptyFraction: 0.9, Seed: 4},
	}
	for _, params := range []cta.Params{{NT: 32, VT: 7}, {NT: 7, VT: 3}} {
		g, err := cta.NewGrid(params, cta.WithPool(pool))
		require.NoError(t, err)
		for _, spec := range specs {
			w, err := workload.Generate(spec)
			require.NoError(t, err)
			report, err := Check(context.Background(), g, w.Count, w.Segments)
			require.NoError(t, err, "%v %+v", params, spec)
			assert.LessOrEqual(t, report.MaxSpan, params.NV()+2)
		}
	}
}

func TestCheckTileDetectsViolations(t *testing.T) {
	segments := []int{0, 3, 3, 7}
	good := func() []loadbalance.Result {
		g, err := cta.NewGrid(cta.Params{NT: 4, VT: 3})
		require.NoError(t, err)
		lanes := make([]loadbalance.Result, 4)
		loadbalance.Inspect(g, 7, segments, func(_, tid int, r loadbalance.Result) {
			lanes[tid] = r
		})
		return lanes
	}

	_, _, err := checkTile(0, good(), segments)
	require.NoError(t, err)

	lanes := good()
	lanes[1].Ranks[0]++
	_, _, err = checkTile(0, lanes, segments)
	assert.ErrorIs(t, err, ErrRank)

	// Output 3 belongs to segment 2; segment 1 is empty but has the same start.
	lanes = good()
	require.Equal(t, 3, lanes[3].Indices[0])
	lanes[3].Segments[0] = 1
	_, _, err = checkTile(0, lanes, segments)
	assert.ErrorIs(t, err, ErrRank)

	lanes = good()
	lanes[2].Indices[0] = lanes[1].Indices[0]
	lanes[2].Segments[0] = lanes[1].Segments[0]
	lanes[2].Ranks[0] = lanes[1].Ranks[0]
	_, _, err = checkTile(0, lanes, segments)
	assert.ErrorIs(t, err, ErrCoverage)

	lanes = good()
	lanes[0].MergeFlags = 0
	_, _, err = checkTile(0, lanes, segments)
	assert.ErrorIs(t, err, ErrFlags)

	lanes = good()
	for i := range lanes {
		lanes[i].Placement.Range.BEnd = len(segments) + 1
	}
	_, _, err = checkTile(0, lanes, segments)
	assert.ErrorIs(t, err, ErrWidening)
}
