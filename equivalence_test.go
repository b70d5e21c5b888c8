package mpsm_test

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"github.com/tamirms/mpsm"
	"github.com/tamirms/mpsm/internal/tablegen"
)

func newRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(sum[:8]), binary.LittleEndian.Uint64(sum[8:])))
}

func clone(ts []mpsm.Tuple) []mpsm.Tuple {
	return append([]mpsm.Tuple(nil), ts...)
}

// runAll executes every strategy on private copies of fact and dim.
func runAll(t *testing.T, fact, dim []mpsm.Tuple, threads int) map[string][]mpsm.Joined {
	t.Helper()
	ctx := context.Background()
	out := map[string][]mpsm.Joined{
		"sortmerge": mpsm.SortMergeJoin(fact, dim),
	}

	parallel, err := mpsm.ParallelSortMergeJoin(ctx, clone(fact), clone(dim), threads)
	require.NoError(t, err)
	out["parallel"] = parallel

	basic, err := mpsm.BasicMPSM(ctx, clone(fact), clone(dim), threads)
	require.NoError(t, err)
	out["basic"] = mpsm.Flatten(basic)

	partitioned, err := mpsm.PartitionedMPSM(ctx, clone(fact), clone(dim), threads)
	require.NoError(t, err)
	out["partitioned"] = mpsm.Flatten(partitioned)
	return out
}

func TestStrategiesAgreeOnGeneratedTables(t *testing.T) {
	rng := newRNG(t)
	fact, dim, err := tablegen.Tables(rng, 10_000, 0.7)
	require.NoError(t, err)

	results := runAll(t, fact, dim, 4)
	want := results["sortmerge"]
	require.Len(t, want, len(dim))

	for name, got := range results {
		require.Equal(t, mpsm.Digest(want), mpsm.Digest(got), name)
		require.True(t, mpsm.EqualMultiset(want, got), name)
	}
	require.Equal(t, want, results["parallel"])
}

func TestStrategiesAgreeOnHashedKeys(t *testing.T) {
	keys := tablegen.SequentialKeys(0, 4096)
	fact := tablegen.HashedTable(keys, 1)
	dim := tablegen.HashedTable(keys[:1000], 2)

	results := runAll(t, fact, dim, 8)
	require.Len(t, results["sortmerge"], 1000)
	for name, got := range results {
		require.True(t, mpsm.EqualMultiset(results["sortmerge"], got), name)
	}
}

func TestStrategiesAgreeOnSkewedTables(t *testing.T) {
	rng := newRNG(t)
	fact := tablegen.SkewedTable(rng, 600, 5)
	dim := tablegen.SkewedTable(rng, 300, 5)
	small := mpsm.NestedLoopJoin(fact, dim)

	for name, got := range runAll(t, fact, dim, 2) {
		require.True(t, mpsm.EqualMultiset(small, got), name)
	}
}

func TestStrategiesAgreeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	tupleGen := gen.SliceOf(gen.UInt64Range(0, 15)).Map(func(keys []uint64) []mpsm.Tuple {
		out := make([]mpsm.Tuple, len(keys))
		for i, k := range keys {
			// Spread the small key space over the radix bins.
			out[i] = mpsm.Tuple{Key: k << 60, Payload: uint64(i)}
		}
		return out
	})

	properties.Property("every strategy returns the nested-loop multiset", prop.ForAll(
		func(left, right []mpsm.Tuple, threadBits uint) bool {
			want := mpsm.NestedLoopJoin(left, right)
			threads := 1 << threadBits
			ctx := context.Background()

			parallel, err := mpsm.ParallelSortMergeJoin(ctx, clone(left), clone(right), threads)
			if err != nil || !mpsm.EqualMultiset(want, parallel) {
				return false
			}
			basic, err := mpsm.BasicMPSM(ctx, clone(left), clone(right), threads)
			if err != nil || !mpsm.EqualMultiset(want, mpsm.Flatten(basic)) {
				return false
			}
			partitioned, err := mpsm.PartitionedMPSM(ctx, clone(left), clone(right), threads)
			if err != nil || !mpsm.EqualMultiset(want, mpsm.Flatten(partitioned)) {
				return false
			}
			return mpsm.EqualMultiset(want, mpsm.SortMergeJoin(left, right))
		},
		tupleGen,
		tupleGen,
		gen.UIntRange(1, 4),
	))

	properties.TestingRun(t)
}
