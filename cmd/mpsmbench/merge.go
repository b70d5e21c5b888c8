package main

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tamirms/mpsm/internal/losertree"
)

type mergeConfig struct {
	runs   int
	length int
	seed   uint64
}

// randomRuns returns k sorted runs of n random values.
func randomRuns(seed uint64, k, n int) [][]uint64 {
	rng := newRNG(seed)
	runs := make([][]uint64, k)
	for i := range runs {
		run := make([]uint64, n)
		for j := range run {
			run[j] = rng.Uint64()
		}
		slices.Sort(run)
		runs[i] = run
	}
	return runs
}

func timeMerge(merge func(func(a, b uint64) int, ...[]uint64) []uint64, runs [][]uint64) ([]uint64, time.Duration) {
	start := time.Now()
	out := merge(cmp.Compare[uint64], runs...)
	return out, time.Since(start)
}

func makeMergeCommand() *cobra.Command {
	config := mergeConfig{runs: 64, length: 100_000, seed: 1}
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		if config.runs < 1 || config.length < 0 {
			return errors.Newf("need at least one run and a non-negative length, got %d runs of %d", config.runs, config.length)
		}
		runs := randomRuns(config.seed, config.runs, config.length)
		total := config.runs * config.length

		tree, treeTime := timeMerge(losertree.Merge[uint64], runs)
		heap, heapTime := timeMerge(losertree.HeapMerge[uint64], runs)
		if !slices.Equal(tree, heap) {
			return errors.AssertionFailedf("loser tree and heap merges differ")
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s runs × %s values\n", humanize.Comma(int64(config.runs)), humanize.Comma(int64(config.length)))
		for _, r := range []struct {
			name    string
			elapsed time.Duration
		}{{"loser tree", treeTime}, {"heap", heapTime}} {
			rate := float64(total) / r.elapsed.Seconds()
			fmt.Fprintf(w, "  %-10s  %12s  %s\n", r.name, r.elapsed.Round(time.Microsecond), humanize.SIWithDigits(rate, 2, "values/s"))
		}
		fmt.Fprintf(w, "  outputs     %s\n", color.GreenString("identical"))
		return nil
	}
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Time loser-tree and heap k-way merges of random sorted runs.",
		Args:  cobra.NoArgs,
		RunE:  runCmdFunc,
	}
	cmd.Flags().IntVar(&config.runs, "runs", config.runs, "number of sorted runs (k)")
	cmd.Flags().IntVar(&config.length, "length", config.length, "values per run")
	cmd.Flags().Uint64Var(&config.seed, "seed", config.seed, "generator seed")
	return cmd
}
