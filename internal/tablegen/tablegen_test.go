package tablegen

import (
	"errors"
	"math/rand/v2"
	"testing"

	mpsmerrors "github.com/tamirms/mpsm/errors"
	"github.com/tamirms/mpsm/internal/radix"
)

func TestTablesReferentialStructure(t *testing.T) {
	rng := rand.New(rand.NewPCG(101, 202))
	fact, dim, err := Tables(rng, 5000, 0.7)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if len(fact) != 5000 {
		t.Fatalf("len(fact) = %d, want 5000", len(fact))
	}
	keys := make(map[uint64]bool, len(fact))
	for _, f := range fact {
		keys[f.Key] = true
	}
	for i, d := range dim {
		if !keys[d.Key] {
			t.Fatalf("dim[%d].Key = 0x%X does not occur in fact", i, d.Key)
		}
	}
	// Mean repetitions per key is reuse/(1-reuse) ≈ 2.33.
	if len(dim) < 5000 || len(dim) > 20000 {
		t.Fatalf("len(dim) = %d, outside the plausible range for reuse 0.7", len(dim))
	}
}

func TestTablesDeterministic(t *testing.T) {
	f1, d1, _ := Tables(rand.New(rand.NewPCG(1, 2)), 100, 0.5)
	f2, d2, _ := Tables(rand.New(rand.NewPCG(1, 2)), 100, 0.5)
	if len(d1) != len(d2) {
		t.Fatalf("dimension sizes differ: %d vs %d", len(d1), len(d2))
	}
	for i := range f1 {
		if f1[i] != f2[i] {
			t.Fatalf("fact[%d] differs: %+v vs %+v", i, f1[i], f2[i])
		}
	}
	for i := range d1 {
		if d1[i] != d2[i] {
			t.Fatalf("dim[%d] differs: %+v vs %+v", i, d1[i], d2[i])
		}
	}
}

func TestDimensionKeysRejectsBadReuse(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, reuse := range []float64{-0.1, 1, 1.5} {
		if _, err := DimensionKeys(rng, []uint64{1, 2, 3}, reuse); !errors.Is(err, mpsmerrors.ErrInvalidReuse) {
			t.Fatalf("DimensionKeys(reuse=%v) error = %v, want ErrInvalidReuse", reuse, err)
		}
	}
	out, err := DimensionKeys(rng, []uint64{1, 2, 3}, 0)
	if err != nil || len(out) != 0 {
		t.Fatalf("DimensionKeys(reuse=0) = (%v, %v), want no keys", out, err)
	}
}

func TestSequentialKeys(t *testing.T) {
	got := SequentialKeys(3, 8)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, k := range got {
		if k != uint64(3+i) {
			t.Fatalf("key[%d] = %d, want %d", i, k, 3+i)
		}
	}
	if got := SequentialKeys(5, 5); len(got) != 0 {
		t.Fatalf("empty range returned %v", got)
	}
}

// TestHashedTableCoversBins checks that sequential keys, which would all
// share bin 0, are spread over every bin after hashing.
func TestHashedTableCoversBins(t *testing.T) {
	table := HashedTable(SequentialKeys(0, 4096), 7)
	const radixBits = 4
	var counts [1 << radixBits]int
	for _, tp := range table {
		counts[radix.Bin(tp.Key, radixBits)]++
	}
	for b, n := range counts {
		if n == 0 {
			t.Fatalf("bin %d is empty", b)
		}
	}

	again := HashedTable(SequentialKeys(0, 4096), 7)
	for i := range table {
		if table[i] != again[i] {
			t.Fatalf("HashedTable not deterministic at %d", i)
		}
	}
}

func TestSkewedTable(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	table := SkewedTable(rng, 1000, 3)
	distinct := make(map[uint64]struct{})
	for _, tp := range table {
		distinct[tp.Key] = struct{}{}
	}
	if len(distinct) > 3 {
		t.Fatalf("%d distinct keys, want at most 3", len(distinct))
	}
}
