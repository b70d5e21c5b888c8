package mpsm

import "slices"

// MergeJoinSorted appends to out every (l, r) pair of left and right with
// equal keys and returns the extended slice. Both inputs must be sorted by
// key.
//
// A key occurring m times on the left and n times on the right yields m×n
// rows, left-major, each side in input order. Rows come out in ascending
// key order. Keys present on one side only produce nothing.
func MergeJoinSorted(left, right []Tuple, out []Joined) []Joined {
	li, ri := 0, 0
	for li < len(left) && ri < len(right) {
		lk, rk := left[li].Key, right[ri].Key
		switch {
		case lk < rk:
			li++
		case lk > rk:
			ri++
		default:
			lStart := li
			for li < len(left) && left[li].Key == lk {
				li++
			}
			rStart := ri
			for ri < len(right) && right[ri].Key == lk {
				ri++
			}
			for _, l := range left[lStart:li] {
				for _, r := range right[rStart:ri] {
					out = append(out, Joined{Key: lk, LeftPayload: l.Payload, RightPayload: r.Payload})
				}
			}
		}
	}
	return out
}

// SortMergeJoin stable-sorts copies of both tables and merge-joins them.
// The inputs are not modified.
func SortMergeJoin(left, right []Tuple) []Joined {
	l := slices.Clone(left)
	r := slices.Clone(right)
	sortByKey(l)
	sortByKey(r)
	return MergeJoinSorted(l, r, nil)
}

// NestedLoopJoin compares every left tuple with every right tuple. Rows
// come out left-major in input order. It is the correctness baseline.
func NestedLoopJoin(left, right []Tuple) []Joined {
	var out []Joined
	for _, l := range left {
		for _, r := range right {
			if l.Key == r.Key {
				out = append(out, Joined{Key: l.Key, LeftPayload: l.Payload, RightPayload: r.Payload})
			}
		}
	}
	return out
}
