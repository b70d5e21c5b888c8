package mpsm

import (
	"context"

	"github.com/cockroachdb/errors"
	mpsmerrors "github.com/tamirms/mpsm/errors"
	"github.com/tamirms/mpsm/internal/losertree"
)

// MergeRuns merges key-sorted runs into one key-sorted table with a loser
// tree. Ties go to the earlier run, so merging the stably sorted runs of a
// table yields the same order as a stable sort of the whole table.
func MergeRuns(runs [][]Tuple) []Tuple {
	return losertree.Merge(compareKeys, runs...)
}

// ParallelSortMergeJoin sorts both tables into threadCount runs in
// parallel, merges each side's runs with a loser tree and merge-joins the
// two sorted sequences. The output, including its order, equals
// SortMergeJoin's. Both tables are reordered into sorted runs.
func ParallelSortMergeJoin(ctx context.Context, left, right []Tuple, threadCount int, opts ...Option) ([]Joined, error) {
	if threadCount < 1 {
		return nil, errors.Wrapf(mpsmerrors.ErrInvalidThreadCount, "thread count %d", threadCount)
	}
	cfg := newConfig(opts)

	if err := sortRuns(ctx, cfg, left, threadCount); err != nil {
		return nil, errors.Wrap(err, "parallel sort-merge")
	}
	if err := sortRuns(ctx, cfg, right, threadCount); err != nil {
		return nil, errors.Wrap(err, "parallel sort-merge")
	}

	// One worker per side.
	var merged [2][]Tuple
	sides := [2][]Tuple{left, right}
	err := runPhase(ctx, cfg, "merge-runs", len(sides), func(w int) error {
		merged[w] = MergeRuns(SortedRuns(sides[w], threadCount))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parallel sort-merge")
	}
	return MergeJoinSorted(merged[0], merged[1], nil), nil
}
