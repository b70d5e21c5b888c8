package losertree

// runHeap is a min-heap of run indices ordered by each run's front value.
// Uses index-based heap for O(log n) push/pop.
type runHeap[T any] struct {
	runs   [][]T
	leaves []int
	cmp    func(a, b T) int
}

func (h *runHeap[T]) len() int {
	return len(h.leaves)
}

func (h *runHeap[T]) swap(i, j int) {
	h.leaves[i], h.leaves[j] = h.leaves[j], h.leaves[i]
}

func (h *runHeap[T]) less(i, j int) bool {
	a, b := h.leaves[i], h.leaves[j]
	if c := h.cmp(h.runs[a][0], h.runs[b][0]); c != 0 {
		return c < 0
	}
	// Deterministic tie-break by run index
	return a < b
}

// push adds a run and maintains heap property. O(log n).
func (h *runHeap[T]) push(run int) {
	h.leaves = append(h.leaves, run)
	h.up(len(h.leaves) - 1)
}

// popTop removes the top run. O(log n).
func (h *runHeap[T]) popTop() {
	n := len(h.leaves) - 1
	h.swap(0, n)
	h.leaves = h.leaves[:n]
	h.down(0, n)
}

func (h *runHeap[T]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *runHeap[T]) down(i, n int) {
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
}

// HeapMerge returns the sorted union of runs using a binary heap. It
// breaks ties exactly like Tree and serves as its reference and benchmark
// baseline.
func HeapMerge[T any](cmp func(a, b T) int, runs ...[]T) []T {
	h := &runHeap[T]{
		runs:   make([][]T, len(runs)),
		leaves: make([]int, 0, len(runs)),
		cmp:    cmp,
	}
	copy(h.runs, runs)

	total := 0
	for i, r := range runs {
		total += len(r)
		if len(r) > 0 {
			h.push(i)
		}
	}

	out := make([]T, 0, total)
	for h.len() > 0 {
		top := h.leaves[0]
		out = append(out, h.runs[top][0])
		h.runs[top] = h.runs[top][1:]
		if len(h.runs[top]) == 0 {
			h.popTop()
		} else {
			h.down(0, h.len())
		}
	}
	return out
}
