// Package radix provides the bit math shared by the chunked and
// radix-partitioned phases: partition-count validation, the most
// significant bits bin function and uniform chunk boundaries.
package radix

import "math/bits"

// Bits returns log2(p) when p is a power of two >= 2. ok is false otherwise.
func Bits(p int) (uint, bool) {
	if p < 2 || p&(p-1) != 0 {
		return 0, false
	}
	return uint(bits.TrailingZeros(uint(p))), true
}

// Bin maps a key to its partition using the top radixBits bits.
// radixBits must be in [1, 64].
func Bin(key uint64, radixBits uint) int {
	return int(key >> (64 - radixBits))
}

// ChunkSize returns ceil(n / chunks). chunks must be >= 1.
func ChunkSize(n, chunks int) int {
	return (n + chunks - 1) / chunks
}

// ChunkBounds returns the half-open range [lo, hi) of chunk i when n
// elements are split into chunks of ChunkSize(n, chunks). Chunks past the
// end of the data are empty, so there are always exactly chunks ranges.
func ChunkBounds(n, chunks, i int) (lo, hi int) {
	size := ChunkSize(n, chunks)
	lo = min(i*size, n)
	hi = min(lo+size, n)
	return lo, hi
}
