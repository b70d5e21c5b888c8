package mpsm

import (
	"cmp"
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"testing"
)

const (
	testSeed1 = 0x6D70736D6A6F696E
	testSeed2 = 0x9E3779B97F4A7C15
)

// newTestRNG returns an RNG seeded from the test name, so every test is
// deterministic and independent of test ordering.
func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// randomTable returns n tuples with uniformly random keys and payloads.
func randomTable(rng *rand.Rand, n int) []Tuple {
	table := make([]Tuple, n)
	for i := range table {
		table[i] = Tuple{Key: rng.Uint64(), Payload: rng.Uint64()}
	}
	return table
}

// smallKeyTable returns n tuples with keys spread over the top bits but
// drawn from only distinct values, so joins produce duplicate runs.
func smallKeyTable(rng *rand.Rand, n, distinct int) []Tuple {
	table := make([]Tuple, n)
	for i := range table {
		k := uint64(rng.IntN(distinct))
		table[i] = Tuple{Key: k * (^uint64(0) / uint64(distinct)), Payload: uint64(i)}
	}
	return table
}

func tuples(pairs ...uint64) []Tuple {
	out := make([]Tuple, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Tuple{Key: pairs[i], Payload: pairs[i+1]})
	}
	return out
}

// sortedTuples returns a copy of ts ordered by key then payload.
func sortedTuples(ts []Tuple) []Tuple {
	out := slices.Clone(ts)
	slices.SortFunc(out, func(a, b Tuple) int {
		return cmp.Or(cmp.Compare(a.Key, b.Key), cmp.Compare(a.Payload, b.Payload))
	})
	return out
}
