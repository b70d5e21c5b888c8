package mpsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func scenarioLeft() []Tuple {
	return tuples(5, 10, 6, 100, 2, 34, 7, 18)
}

func scenarioRight() []Tuple {
	return tuples(5, 15, 8, 16, 2, 36, 2, 18, 2, 8, 9, 9)
}

var scenarioWant = []Joined{
	{Key: 2, LeftPayload: 34, RightPayload: 36},
	{Key: 2, LeftPayload: 34, RightPayload: 18},
	{Key: 2, LeftPayload: 34, RightPayload: 8},
	{Key: 5, LeftPayload: 10, RightPayload: 15},
}

func TestSortMergeJoinScenario(t *testing.T) {
	left, right := scenarioLeft(), scenarioRight()
	require.Equal(t, scenarioWant, SortMergeJoin(left, right))

	// Inputs are untouched.
	require.Equal(t, scenarioLeft(), left)
	require.Equal(t, scenarioRight(), right)
}

func TestNestedLoopJoinScenario(t *testing.T) {
	got := NestedLoopJoin(scenarioLeft(), scenarioRight())
	require.True(t, EqualMultiset(scenarioWant, got), "got %v", got)
	// Left-major: key 5 comes first on the left.
	require.Equal(t, Joined{Key: 5, LeftPayload: 10, RightPayload: 15}, got[0])
}

func TestMergeJoinSortedDuplicates(t *testing.T) {
	left := tuples(1, 0, 4, 1, 4, 2, 4, 3, 9, 0)
	right := tuples(0, 0, 4, 10, 4, 20, 7, 0, 9, 5, 9, 6)

	got := MergeJoinSorted(left, right, nil)
	require.Equal(t, []Joined{
		{4, 1, 10}, {4, 1, 20},
		{4, 2, 10}, {4, 2, 20},
		{4, 3, 10}, {4, 3, 20},
		{9, 0, 5}, {9, 0, 6},
	}, got)
}

func TestMergeJoinSortedAppends(t *testing.T) {
	prior := []Joined{{Key: 99}}
	got := MergeJoinSorted(tuples(1, 1), tuples(1, 2), prior)
	require.Equal(t, []Joined{{Key: 99}, {1, 1, 2}}, got)
}

func TestMergeJoinSortedNoMatches(t *testing.T) {
	require.Empty(t, MergeJoinSorted(tuples(1, 0, 3, 0), tuples(2, 0, 4, 0), nil))
	require.Empty(t, MergeJoinSorted(nil, tuples(2, 0), nil))
	require.Empty(t, MergeJoinSorted(tuples(2, 0), nil, nil))
}

func TestSortMergeJoinMatchesNestedLoop(t *testing.T) {
	rng := newTestRNG(t)
	for range 20 {
		left := smallKeyTable(rng, rng.IntN(200), 1+rng.IntN(30))
		right := smallKeyTable(rng, rng.IntN(200), 1+rng.IntN(30))
		want := NestedLoopJoin(left, right)
		got := SortMergeJoin(left, right)
		require.True(t, EqualMultiset(want, got))
		require.Equal(t, Digest(want), Digest(got))
	}
}

func TestSortMergeJoinCardinality(t *testing.T) {
	// m left and n right tuples with the same key give m×n rows.
	for _, mn := range [][2]int{{1, 1}, {3, 4}, {10, 1}, {7, 7}} {
		left := make([]Tuple, mn[0])
		for i := range left {
			left[i] = Tuple{Key: 42, Payload: uint64(i)}
		}
		right := make([]Tuple, mn[1])
		for i := range right {
			right[i] = Tuple{Key: 42, Payload: uint64(100 + i)}
		}
		require.Len(t, SortMergeJoin(left, right), mn[0]*mn[1])
	}
}
