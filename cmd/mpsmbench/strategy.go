package main

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tamirms/mpsm"
	"github.com/tamirms/mpsm/internal/tablefile"
	"github.com/tamirms/mpsm/internal/tablegen"
)

// strategy runs one join and returns its rows flattened.
type strategy func(ctx context.Context, left, right []mpsm.Tuple, threads int, opts ...mpsm.Option) ([]mpsm.Joined, error)

var strategies = map[string]strategy{
	"nested": func(_ context.Context, left, right []mpsm.Tuple, _ int, _ ...mpsm.Option) ([]mpsm.Joined, error) {
		return mpsm.NestedLoopJoin(left, right), nil
	},
	"sortmerge": func(_ context.Context, left, right []mpsm.Tuple, _ int, _ ...mpsm.Option) ([]mpsm.Joined, error) {
		return mpsm.SortMergeJoin(left, right), nil
	},
	"parallel":    mpsm.ParallelSortMergeJoin,
	"basic":       flattened(mpsm.BasicMPSM),
	"partitioned": flattened(mpsm.PartitionedMPSM),
}

func flattened(join func(context.Context, []mpsm.Tuple, []mpsm.Tuple, int, ...mpsm.Option) ([][]mpsm.Joined, error)) strategy {
	return func(ctx context.Context, left, right []mpsm.Tuple, threads int, opts ...mpsm.Option) ([]mpsm.Joined, error) {
		results, err := join(ctx, left, right, threads, opts...)
		if err != nil {
			return nil, err
		}
		return mpsm.Flatten(results), nil
	}
}

func strategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupStrategy(name string) (strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, errors.Newf("unknown strategy %q (use one of %s)", name, strings.Join(strategyNames(), ", "))
	}
	return s, nil
}

// tableSource says where a join's inputs come from: two table files, or a
// generator run when either path is empty.
type tableSource struct {
	Left  string  `yaml:"left"`
	Right string  `yaml:"right"`
	Rows  int     `yaml:"rows"`
	Reuse float64 `yaml:"reuse"`
	Seed  uint64  `yaml:"seed"`
}

func defaultTableSource() tableSource {
	return tableSource{Rows: 1_000_000, Reuse: 0.7, Seed: 1}
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

func (s tableSource) load() (left, right []mpsm.Tuple, err error) {
	if s.Left == "" || s.Right == "" {
		return tablegen.Tables(newRNG(s.Seed), s.Rows, s.Reuse)
	}
	left, err = tablefile.Load(s.Left)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load %s", s.Left)
	}
	right, err = tablefile.Load(s.Right)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load %s", s.Right)
	}
	return left, right, nil
}
