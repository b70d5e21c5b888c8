package mpsm

import (
	"cmp"
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	mpsmerrors "github.com/tamirms/mpsm/errors"
	"github.com/tamirms/mpsm/internal/radix"
)

// SortRunsParallel sorts each of chunkCount contiguous chunks of table in
// place by key, one worker per chunk, and returns once every chunk is
// sorted. The sort is stable. The table as a whole is not sorted, only its
// runs; see SortedRuns and MergeRuns.
func SortRunsParallel(ctx context.Context, table []Tuple, chunkCount int, opts ...Option) error {
	if chunkCount < 1 {
		return errors.Wrapf(mpsmerrors.ErrInvalidChunkCount, "chunk count %d", chunkCount)
	}
	return sortRuns(ctx, newConfig(opts), table, chunkCount)
}

func sortRuns(ctx context.Context, cfg *config, table []Tuple, chunkCount int) error {
	return runPhase(ctx, cfg, "sort-runs", chunkCount, func(w int) error {
		lo, hi := radix.ChunkBounds(len(table), chunkCount, w)
		sortByKey(table[lo:hi])
		return nil
	})
}

// SortedRuns returns views of the chunkCount chunks of table, using the
// same chunk boundaries as SortRunsParallel. chunkCount must be >= 1.
func SortedRuns(table []Tuple, chunkCount int) [][]Tuple {
	runs := make([][]Tuple, chunkCount)
	for i := range runs {
		lo, hi := radix.ChunkBounds(len(table), chunkCount, i)
		runs[i] = table[lo:hi:hi]
	}
	return runs
}

func sortByKey(ts []Tuple) {
	slices.SortStableFunc(ts, compareKeys)
}

func compareKeys(a, b Tuple) int {
	return cmp.Compare(a.Key, b.Key)
}
