// Package tablegen generates join inputs: a fact relation of random keys
// and a dimension relation that reuses fact keys a random number of times,
// plus sequential and hashed key tables for radix-sensitive tests.
package tablegen

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/spaolacci/murmur3"
	"github.com/tamirms/mpsm"
	mpsmerrors "github.com/tamirms/mpsm/errors"
	"github.com/zeebo/xxh3"
)

// DimensionKeys walks keys in order and emits each one again while a
// Bernoulli(reuse) draw succeeds, so a key appears Geometric(1-reuse)-1
// times: 0 times with probability 1-reuse.
func DimensionKeys(rng *rand.Rand, keys []uint64, reuse float64) ([]uint64, error) {
	if !(reuse >= 0 && reuse < 1) {
		return nil, errors.Wrapf(mpsmerrors.ErrInvalidReuse, "reuse %v", reuse)
	}
	var out []uint64
	for _, k := range keys {
		for rng.Float64() < reuse {
			out = append(out, k)
		}
	}
	return out, nil
}

// RandomValues returns n uniformly random uint64 values.
func RandomValues(rng *rand.Rand, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = rng.Uint64()
	}
	return out
}

// Table zips keys and payloads. Both must have the same length.
func Table(keys, payloads []uint64) []mpsm.Tuple {
	if len(keys) != len(payloads) {
		panic("tablegen: keys and payloads differ in length")
	}
	out := make([]mpsm.Tuple, len(keys))
	for i := range keys {
		out[i] = mpsm.Tuple{Key: keys[i], Payload: payloads[i]}
	}
	return out
}

// Tables generates a fact table of n random tuples and a dimension table
// whose keys are fact keys repeated per DimensionKeys, with random payloads.
// Every dimension key matches at least one fact key.
func Tables(rng *rand.Rand, n int, reuse float64) (fact, dim []mpsm.Tuple, err error) {
	factKeys := RandomValues(rng, n)
	factPayloads := RandomValues(rng, n)
	dimKeys, err := DimensionKeys(rng, factKeys, reuse)
	if err != nil {
		return nil, nil, err
	}
	dimPayloads := RandomValues(rng, len(dimKeys))
	return Table(factKeys, factPayloads), Table(dimKeys, dimPayloads), nil
}

// SequentialKeys returns start, start+1, ..., end-1.
func SequentialKeys(start, end uint64) []uint64 {
	if end <= start {
		return nil
	}
	out := make([]uint64, 0, end-start)
	for k := start; k < end; k++ {
		out = append(out, k)
	}
	return out
}

// HashedTable builds a table from raw keys. Keys are spread with xxHash3 so
// that dense or sequential inputs still cover every radix bin (sequential
// keys share their top bits and would all land in bin 0). Payloads are the
// seeded murmur3 hash of the raw key, so a payload can be recomputed from
// the key that produced it.
func HashedTable(keys []uint64, seed uint32) []mpsm.Tuple {
	var buf [8]byte
	out := make([]mpsm.Tuple, len(keys))
	for i, k := range keys {
		binary.LittleEndian.PutUint64(buf[:], k)
		out[i] = mpsm.Tuple{
			Key:     xxh3.Hash(buf[:]),
			Payload: murmur3.Sum64WithSeed(buf[:], seed),
		}
	}
	return out
}

// SkewedTable returns n tuples whose keys are drawn from only distinct
// values (distinct >= 1), giving long duplicate runs for many-to-many joins.
func SkewedTable(rng *rand.Rand, n, distinct int) []mpsm.Tuple {
	pool := RandomValues(rng, max(distinct, 1))
	out := make([]mpsm.Tuple, n)
	for i := range out {
		out[i] = mpsm.Tuple{Key: pool[rng.IntN(len(pool))], Payload: rng.Uint64()}
	}
	return out
}
