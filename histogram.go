package mpsm

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	mpsmerrors "github.com/tamirms/mpsm/errors"
	"github.com/tamirms/mpsm/internal/radix"
)

// ChunkHistograms splits table into chunkCount contiguous chunks of
// ceil(len/chunkCount) tuples and counts, for each chunk in parallel, how
// many tuples fall into each of partitionCount radix bins. A key's bin is
// its top log2(partitionCount) bits.
//
// The result has one row per chunk (trailing chunks may be empty) and one
// column per bin. partitionCount must be a power of two >= 2, chunkCount
// at least 1 and table non-empty.
func ChunkHistograms(ctx context.Context, table []Tuple, chunkCount, partitionCount int, opts ...Option) ([][]uint64, error) {
	radixBits, ok := radix.Bits(partitionCount)
	if !ok {
		return nil, errors.Wrapf(mpsmerrors.ErrInvalidPartitionCount, "partition count %d", partitionCount)
	}
	if chunkCount < 1 {
		return nil, errors.Wrapf(mpsmerrors.ErrInvalidChunkCount, "chunk count %d", chunkCount)
	}
	if len(table) == 0 {
		return nil, mpsmerrors.ErrEmptyInput
	}
	return chunkHistograms(ctx, newConfig(opts), table, chunkCount, radixBits)
}

func chunkHistograms(ctx context.Context, cfg *config, table []Tuple, chunkCount int, radixBits uint) ([][]uint64, error) {
	histograms := make([][]uint64, chunkCount)
	for i := range histograms {
		histograms[i] = make([]uint64, 1<<radixBits)
	}

	err := runPhase(ctx, cfg, "histogram", chunkCount, func(w int) error {
		lo, hi := radix.ChunkBounds(len(table), chunkCount, w)
		h := histograms[w]
		for _, t := range table[lo:hi] {
			h[radix.Bin(t.Key, radixBits)]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return histograms, nil
}

// PrefixSums turns per-chunk histograms into the (chunks+1) × bins matrix
// of write offsets: row 0 is all zeros and row i+1 is row i plus histogram
// i. Row i therefore holds, per bin, where chunk i starts writing inside
// that bin's partition, and the last row holds the final partition sizes.
func PrefixSums(histograms [][]uint64) ([][]uint64, error) {
	if len(histograms) == 0 || len(histograms[0]) == 0 {
		return nil, mpsmerrors.ErrInvalidHistogram
	}
	bins := len(histograms[0])

	ps := make([][]uint64, 0, len(histograms)+1)
	cur := make([]uint64, bins)
	ps = append(ps, slices.Clone(cur))
	for i, h := range histograms {
		if len(h) != bins {
			return nil, errors.Wrapf(mpsmerrors.ErrInvalidHistogram,
				"histogram %d has %d bins, want %d", i, len(h), bins)
		}
		for b, n := range h {
			cur[b] += n
		}
		ps = append(ps, slices.Clone(cur))
	}
	return ps, nil
}

// PartitionSizes returns a copy of the last prefix-sum row: the exact size
// of every destination partition.
func PartitionSizes(prefix [][]uint64) []uint64 {
	if len(prefix) == 0 {
		return nil
	}
	return slices.Clone(prefix[len(prefix)-1])
}
