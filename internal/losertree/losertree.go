// Package losertree implements k-way merging of sorted runs with a
// tournament (loser) tree.
//
// The tree is a flat array laid out like a binary heap: the children of
// position i are 2i+1 and 2i+2 and its parent is (i-1)/2. Leaves are split
// recursively into balanced halves, so every leaf also owns a position;
// internal positions store the index of the leaf that lost the match played
// there. The overall winner is kept outside the array.
//
// Replacing the winner and replaying its path costs ceil(log2(k))
// comparisons, half of what a binary heap's pop+push needs.
package losertree

import "iter"

// Tree merges k sorted runs lazily. It is not safe for concurrent use.
//
// Ordering is total: an exhausted run compares greater than any value,
// and equal values (or two exhausted runs) are ordered by run index, so
// the lower run index wins ties.
type Tree[T any] struct {
	cmp       func(a, b T) int
	runs      [][]T // unconsumed suffix of each run
	nodes     []int // loser leaf index per internal position
	leafPos   []int // array position of each leaf
	winner    int   // -1 when there are no runs
	remaining int
}

// New builds a tree over runs. Each run must be sorted by cmp. The runs are
// resliced while merging but their contents are never modified.
// With no runs the tree starts exhausted.
func New[T any](cmp func(a, b T) int, runs ...[]T) *Tree[T] {
	t := &Tree[T]{
		cmp:     cmp,
		runs:    make([][]T, len(runs)),
		leafPos: make([]int, len(runs)),
		winner:  -1,
	}
	copy(t.runs, runs)
	for _, r := range runs {
		t.remaining += len(r)
	}
	if len(runs) == 0 {
		return t
	}

	t.nodes = make([]int, 2*ceilPow2(len(runs))-1)
	for i := range t.nodes {
		t.nodes[i] = -1
	}
	t.winner = t.build(0, 0, len(runs))
	return t
}

// build plays the tournament for leaves [lo, hi) rooted at pos, stores the
// loser at pos and returns the winner.
func (t *Tree[T]) build(pos, lo, hi int) int {
	if hi-lo == 1 {
		t.leafPos[lo] = pos
		return lo
	}
	mid := (lo + hi) / 2
	lw := t.build(2*pos+1, lo, mid)
	rw := t.build(2*pos+2, mid, hi)
	if t.beats(lw, rw) {
		t.nodes[pos] = rw
		return lw
	}
	t.nodes[pos] = lw
	return rw
}

// beats reports whether leaf a is preferred over leaf b.
func (t *Tree[T]) beats(a, b int) bool {
	ea, eb := len(t.runs[a]) == 0, len(t.runs[b]) == 0
	switch {
	case ea && eb:
		return a < b
	case eb:
		return true
	case ea:
		return false
	}
	if c := t.cmp(t.runs[a][0], t.runs[b][0]); c != 0 {
		return c < 0
	}
	return a < b
}

// replay walks from leaf up to the root. At each internal position the
// incoming winner plays the stored loser; the loser stays, the winner
// continues up.
func (t *Tree[T]) replay(leaf int) {
	winner := leaf
	for pos := t.leafPos[leaf]; pos > 0; {
		pos = (pos - 1) / 2
		if stored := t.nodes[pos]; t.beats(stored, winner) {
			t.nodes[pos] = winner
			winner = stored
		}
	}
	t.winner = winner
}

// Len returns the number of values not yet emitted.
func (t *Tree[T]) Len() int {
	return t.remaining
}

// Winner returns the current minimum and the run it comes from without
// consuming it. ok is false once every run is exhausted.
func (t *Tree[T]) Winner() (v T, run int, ok bool) {
	if t.remaining == 0 {
		return v, -1, false
	}
	return t.runs[t.winner][0], t.winner, true
}

// Next emits the current minimum and advances its run.
func (t *Tree[T]) Next() (v T, ok bool) {
	if t.remaining == 0 {
		return v, false
	}
	w := t.winner
	v = t.runs[w][0]
	t.runs[w] = t.runs[w][1:]
	t.remaining--
	t.replay(w)
	return v, true
}

// All returns an iterator draining the tree. The tree cannot be restarted;
// values consumed by an earlier Next are not produced again.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := t.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Merge returns the sorted union of runs.
func Merge[T any](cmp func(a, b T) int, runs ...[]T) []T {
	t := New(cmp, runs...)
	out := make([]T, 0, t.Len())
	for v := range t.All() {
		out = append(out, v)
	}
	return out
}

func ceilPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
