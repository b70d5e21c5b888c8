package mpsm

import (
	"context"

	"github.com/cockroachdb/errors"
	mpsmerrors "github.com/tamirms/mpsm/errors"
	"github.com/tamirms/mpsm/internal/radix"
	"go.uber.org/zap"
)

// BasicMPSM joins left (private) and right (public) with threadCount
// workers and no partitioning.
//
// Phase 1 sorts right into threadCount runs in place. Phase 2 gives every
// worker one contiguous chunk of left, which it sorts in place and then
// merge-joins against every public run. Each worker therefore scans the
// whole public relation; this is the unpartitioned baseline that
// PartitionedMPSM improves on.
//
// The result holds one list per worker. Order across lists is undefined;
// within a list each public run contributes its matches in key order.
// Both left and right are reordered.
func BasicMPSM(ctx context.Context, left, right []Tuple, threadCount int, opts ...Option) ([][]Joined, error) {
	if threadCount < 1 {
		return nil, errors.Wrapf(mpsmerrors.ErrInvalidThreadCount, "thread count %d", threadCount)
	}
	cfg := newConfig(opts)

	if err := sortRuns(ctx, cfg, right, threadCount); err != nil {
		return nil, errors.Wrap(err, "basic mpsm")
	}
	public := SortedRuns(right, threadCount)

	outputs := make([][]Joined, threadCount)
	err := runPhase(ctx, cfg, "sort-merge", threadCount, func(w int) error {
		lo, hi := radix.ChunkBounds(len(left), threadCount, w)
		private := left[lo:hi]
		sortByKey(private)
		outputs[w] = joinRuns(private, public)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "basic mpsm")
	}

	cfg.logger.Debug("join finished",
		zap.String("strategy", "basic"),
		zap.Int("workers", threadCount),
		zap.Int("rows", resultLen(outputs)))
	return outputs, nil
}

// PartitionedMPSM joins left (private) and right (public) with threadCount
// workers, radix-partitioning the private relation first.
//
// Phase 1 sorts right into threadCount runs in place. Phase 2 builds
// per-chunk histograms of left over threadCount bins (top log2(threadCount)
// key bits). Phase 3 scatters left into threadCount partitions using the
// prefix sums of those histograms. Phase 4 has each worker sort one
// partition and merge-join it against every public run. Because partitions
// cover disjoint key ranges, each worker's private input is one key range
// instead of an arbitrary slice of the relation.
//
// threadCount must be a power of two >= 2. left is not modified; right is
// reordered. The result holds one list per worker.
func PartitionedMPSM(ctx context.Context, left, right []Tuple, threadCount int, opts ...Option) ([][]Joined, error) {
	if threadCount < 1 {
		return nil, errors.Wrapf(mpsmerrors.ErrInvalidThreadCount, "thread count %d", threadCount)
	}
	radixBits, ok := radix.Bits(threadCount)
	if !ok {
		return nil, errors.Wrapf(mpsmerrors.ErrInvalidPartitionCount, "thread count %d", threadCount)
	}
	cfg := newConfig(opts)

	if err := sortRuns(ctx, cfg, right, threadCount); err != nil {
		return nil, errors.Wrap(err, "partitioned mpsm")
	}
	public := SortedRuns(right, threadCount)

	outputs := make([][]Joined, threadCount)
	if len(left) == 0 {
		return outputs, nil
	}

	histograms, err := chunkHistograms(ctx, cfg, left, threadCount, radixBits)
	if err != nil {
		return nil, errors.Wrap(err, "partitioned mpsm")
	}
	prefix, err := PrefixSums(histograms)
	if err != nil {
		return nil, errors.Wrap(err, "partitioned mpsm")
	}
	partitions, err := scatter(ctx, cfg, left, prefix, radixBits)
	if err != nil {
		return nil, errors.Wrap(err, "partitioned mpsm")
	}

	err = runPhase(ctx, cfg, "sort-merge", threadCount, func(w int) error {
		private := partitions[w]
		sortByKey(private)
		outputs[w] = joinRuns(private, public)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "partitioned mpsm")
	}

	cfg.logger.Debug("join finished",
		zap.String("strategy", "partitioned"),
		zap.Int("workers", threadCount),
		zap.Uint64s("partition_sizes", PartitionSizes(prefix)),
		zap.Int("rows", resultLen(outputs)))
	return outputs, nil
}

// joinRuns merge-joins a sorted private chunk against each public run.
func joinRuns(private []Tuple, public [][]Tuple) []Joined {
	var out []Joined
	for _, run := range public {
		out = MergeJoinSorted(private, run, out)
	}
	return out
}

// Flatten concatenates per-worker results.
func Flatten(results [][]Joined) []Joined {
	out := make([]Joined, 0, resultLen(results))
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func resultLen(results [][]Joined) int {
	n := 0
	for _, r := range results {
		n += len(r)
	}
	return n
}
