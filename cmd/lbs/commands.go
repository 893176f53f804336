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

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-lbs/cta"
	"github.com/ajroetker/go-lbs/cta/contrib/loadbalance"
	"github.com/ajroetker/go-lbs/cta/contrib/scan"
	"github.com/ajroetker/go-lbs/cta/contrib/verify"
	"github.com/ajroetker/go-lbs/cta/contrib/workload"
)

var errNoSegments = errors.New("at least one segment length is required")

func segmentsFromLengths(lengths []int) ([]int, int, error) {
	if len(lengths) == 0 {
		return nil, 0, errNoSegments
	}
	if lo.SomeBy(lengths, func(n int) bool { return n < 0 }) {
		return nil, 0, fmt.Errorf("negative segment length in %v", lengths)
	}
	segments, count := scan.ExclusiveSum(lengths)
	return segments, count, nil
}

func newSearchCmd(a *app) *cobra.Command {
	var lengths []int
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print the segment and rank of every output",
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, count, err := segmentsFromLengths(lengths)
			if err != nil {
				return err
			}
			segs := make([]int, count)
			ranks := make([]int, count)
			loadbalance.Transform(a.grid, count, segments, func(index, seg, rank int) {
				segs[index], ranks[index] = seg, rank
			})
			return writeTable(cmd.OutOrStdout(), []string{"index", "segment", "rank"}, count, func(i int) []any {
				return []any{i, segs[i], ranks[i]}
			})
		},
	}
	cmd.Flags().IntSliceVar(&lengths, "lengths", nil, "comma-separated segment lengths")
	return cmd
}

func newExpandCmd(a *app) *cobra.Command {
	var (
		lengths []int
		values  []float64
	)
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Repeat each segment's value once per output of the segment",
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, count, err := segmentsFromLengths(lengths)
			if err != nil {
				return err
			}
			if len(values) != len(segments) {
				return fmt.Errorf("got %d values for %d segments", len(values), len(segments))
			}
			out := loadbalance.IntervalExpand(a.grid, count, segments, values)
			strs := lo.Map(out, func(x float64, _ int) string { return fmt.Sprint(x) })
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(strs, " "))
			return err
		},
	}
	cmd.Flags().IntSliceVar(&lengths, "lengths", nil, "comma-separated segment lengths")
	cmd.Flags().Float64SliceVar(&values, "values", nil, "comma-separated value per segment")
	return cmd
}

// addWorkloadFlags adds flags for the workload.* config keys to cmd.
func addWorkloadFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int("segments", 0, "number of segments")
	flags.Float64("mean", 0, "mean segment length")
	flags.String("dist", "", "segment length distribution (poisson, uniform)")
	flags.Float64("empty", 0, "fraction of segments forced empty")
	flags.Uint64("seed", 0, "random seed")
	configKey(flags, "segments", "workload.segments")
	configKey(flags, "mean", "workload.meanLength")
	configKey(flags, "dist", "workload.distribution")
	configKey(flags, "empty", "workload.emptyFraction")
	configKey(flags, "seed", "workload.seed")
}

func (a *app) generate() (*workload.Workload, error) {
	w, err := workload.Generate(a.cfg.Workload)
	if err != nil {
		return nil, err
	}
	stats := workload.Summarize(w.Lengths)
	a.log.Info().
		Int("segments", stats.Segments).
		Int("empty", stats.Empty).
		Int("outputs", stats.Count).
		Float64("mean", stats.Mean).
		Float64("stddev", stats.StdDev).
		Float64("p99", stats.P99).
		Float64("max", stats.Max).
		Float64("imbalance", stats.Imbalance()).
		Msg("workload")
	return w, nil
}

func newVerifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Generate a workload and check every tile's result",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.generate()
			if err != nil {
				return err
			}
			report, err := verify.Check(cmd.Context(), a.grid, w.Count, w.Segments)
			if err != nil {
				return err
			}
			a.log.Info().
				Int("tiles", report.Tiles).
				Int("outputs", report.Outputs).
				Int("maxSpan", report.MaxSpan).
				Msg("all invariants hold")
			return nil
		},
	}
	addWorkloadFlags(cmd)
	return cmd
}

func newBenchCmd(a *app) *cobra.Command {
	var iters int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the load-balancing search on a generated workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			if iters < 1 {
				return fmt.Errorf("--iters=%d, want >= 1", iters)
			}
			w, err := a.generate()
			if err != nil {
				return err
			}
			times := make([]time.Duration, iters)
			for i := range times {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				start := time.Now()
				loadbalance.Search(a.grid, w.Count, w.Segments)
				times[i] = time.Since(start)
			}
			best := lo.Min(times)
			mean := lo.Sum(times) / time.Duration(iters)
			work := float64(w.Count + len(w.Segments))
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"%s workers=%d simd=%s outputs=%d segments=%d best=%v mean=%v (%.1f M items/s)\n",
				a.cfg.Params(), a.pool.NumWorkers(), cta.CurrentName(), w.Count, len(w.Segments),
				best, mean, work/best.Seconds()/1e6)
			return err
		},
	}
	cmd.Flags().IntVar(&iters, "iters", 10, "timed iterations")
	addWorkloadFlags(cmd)
	return cmd
}

func writeTable(w io.Writer, header []string, rows int, row func(i int) []any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for i := range rows {
		cells := lo.Map(row(i), func(c any, _ int) string { return fmt.Sprint(c) })
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
