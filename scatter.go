package mpsm

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	mpsmerrors "github.com/tamirms/mpsm/errors"
	"github.com/tamirms/mpsm/internal/radix"
)

// Scatter redistributes table into radix partitions laid out by prefix, the
// output of PrefixSums over ChunkHistograms of the same table and chunk
// count. It returns one freshly allocated buffer per bin, sized by the last
// prefix row. table must be non-empty.
//
// Chunk i writes its bin-b tuples only into [prefix[i][b], prefix[i+1][b])
// of partition b. Those ranges tile every partition without overlap, so the
// chunk workers share the destination buffers without any locking. Within
// a partition, tuples keep their relative input order.
func Scatter(ctx context.Context, table []Tuple, prefix [][]uint64, opts ...Option) ([][]Tuple, error) {
	if len(table) == 0 {
		return nil, mpsmerrors.ErrEmptyInput
	}
	radixBits, err := validatePrefixSums(prefix, len(table))
	if err != nil {
		return nil, err
	}
	return scatter(ctx, newConfig(opts), table, prefix, radixBits)
}

// validatePrefixSums checks the shape of prefix and that it accounts for
// exactly n tuples. It returns the radix width implied by the bin count.
func validatePrefixSums(prefix [][]uint64, n int) (uint, error) {
	if len(prefix) < 2 {
		return 0, errors.Wrapf(mpsmerrors.ErrInvalidPrefixSums, "%d rows, want at least 2", len(prefix))
	}
	bins := len(prefix[0])
	radixBits, ok := radix.Bits(bins)
	if !ok {
		return 0, errors.Wrapf(mpsmerrors.ErrInvalidPartitionCount, "partition count %d", bins)
	}
	for i, row := range prefix {
		if len(row) != bins {
			return 0, errors.Wrapf(mpsmerrors.ErrInvalidPrefixSums, "row %d has %d bins, want %d", i, len(row), bins)
		}
	}
	for b := range bins {
		if prefix[0][b] != 0 {
			return 0, errors.Wrapf(mpsmerrors.ErrInvalidPrefixSums, "row 0 bin %d is %d, want 0", b, prefix[0][b])
		}
		for i := 1; i < len(prefix); i++ {
			if prefix[i][b] < prefix[i-1][b] {
				return 0, errors.Wrapf(mpsmerrors.ErrInvalidPrefixSums, "bin %d decreases at row %d", b, i)
			}
		}
	}

	var total uint64
	for _, size := range prefix[len(prefix)-1] {
		total += size
	}
	if total != uint64(n) {
		return 0, errors.Wrapf(mpsmerrors.ErrInvalidPrefixSums, "partitions hold %d tuples, table has %d", total, n)
	}
	return radixBits, nil
}

func scatter(ctx context.Context, cfg *config, table []Tuple, prefix [][]uint64, radixBits uint) ([][]Tuple, error) {
	chunkCount := len(prefix) - 1
	sizes := prefix[chunkCount]

	partitions := make([][]Tuple, len(sizes))
	for b, size := range sizes {
		partitions[b] = make([]Tuple, size)
	}

	err := runPhase(ctx, cfg, "scatter", chunkCount, func(w int) error {
		lo, hi := radix.ChunkBounds(len(table), chunkCount, w)
		start, end := prefix[w], prefix[w+1]
		cursor := slices.Clone(start)

		for _, t := range table[lo:hi] {
			b := radix.Bin(t.Key, radixBits)
			// Never write past this chunk's own region, even when prefix
			// was computed for a different chunking.
			if cursor[b] >= end[b] {
				return errors.Wrapf(mpsmerrors.ErrScatterRegion,
					"chunk %d bin %d: region [%d, %d) is full", w, b, start[b], end[b])
			}
			partitions[b][cursor[b]] = t
			cursor[b]++
		}

		for b := range cursor {
			if cursor[b] != end[b] {
				return errors.Wrapf(mpsmerrors.ErrScatterRegion,
					"chunk %d bin %d: wrote %d of %d tuples", w, b, cursor[b]-start[b], end[b]-start[b])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return partitions, nil
}
