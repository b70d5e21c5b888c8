package mpsm

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// EqualMultiset reports whether a and b hold the same rows with the same
// multiplicities, ignoring order.
func EqualMultiset(a, b []Joined) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := slices.Clone(a), slices.Clone(b)
	slices.SortFunc(sa, compareJoined)
	slices.SortFunc(sb, compareJoined)
	return slices.Equal(sa, sb)
}

func compareJoined(a, b Joined) int {
	return cmp.Or(
		cmp.Compare(a.Key, b.Key),
		cmp.Compare(a.LeftPayload, b.LeftPayload),
		cmp.Compare(a.RightPayload, b.RightPayload),
	)
}

// Digest returns an order-independent fingerprint of rows: the wrapping sum
// of the xxHash64 of each row's 24-byte little-endian encoding. Equal
// multisets always have equal digests, which lets large results from
// different strategies be compared without sorting them.
func Digest(rows []Joined) uint64 {
	var buf [24]byte
	var sum uint64
	for _, r := range rows {
		binary.LittleEndian.PutUint64(buf[0:8], r.Key)
		binary.LittleEndian.PutUint64(buf[8:16], r.LeftPayload)
		binary.LittleEndian.PutUint64(buf[16:24], r.RightPayload)
		sum += xxhash.Sum64(buf[:])
	}
	return sum
}

// TupleDigest is Digest for tables.
func TupleDigest(rows []Tuple) uint64 {
	var buf [16]byte
	var sum uint64
	for _, t := range rows {
		binary.LittleEndian.PutUint64(buf[0:8], t.Key)
		binary.LittleEndian.PutUint64(buf[8:16], t.Payload)
		sum += xxhash.Sum64(buf[:])
	}
	return sum
}
