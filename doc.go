// Package mpsm implements in-memory equi-joins of two relations of
// (key, payload) tuples, centred on the Massively Parallel Sort-Merge
// (MPSM) join.
//
// # Basic Usage
//
// Joining two tables with radix-partitioned MPSM on 8 workers:
//
//	results, err := mpsm.PartitionedMPSM(ctx, left, right, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range mpsm.Flatten(results) {
//	    fmt.Println(row.Key, row.LeftPayload, row.RightPayload)
//	}
//
// The left table is the private relation: it is split into chunks that are
// each owned by exactly one worker. The right table is the public relation:
// it is sorted into runs once and then read by every worker.
//
// # Strategies
//
//   - NestedLoopJoin: quadratic baseline.
//   - SortMergeJoin: sort both sides, one merge pass.
//   - ParallelSortMergeJoin: sort runs in parallel, k-way merge them with a
//     loser tree, one merge pass.
//   - BasicMPSM: every worker sorts a private chunk and merge-joins it
//     against every public run.
//   - PartitionedMPSM: the private relation is first radix-partitioned by
//     the top log2(workers) key bits so each worker owns one key range.
//
// All strategies produce the same multiset of Joined rows.
//
// # Package Structure
//
//   - Tuples: tuple.go (Tuple, Joined)
//   - Configuration: options.go (Option, With* functions)
//   - Phases: phase.go (bounded worker groups with a barrier)
//   - Partitioning: histogram.go (ChunkHistograms, PrefixSums), scatter.go (Scatter)
//   - Sorting and merging: sortruns.go (SortRunsParallel), runs.go (MergeRuns),
//     internal/losertree/ (tournament tree)
//   - Joins: mergejoin.go (MergeJoinSorted, SortMergeJoin, NestedLoopJoin),
//     mpsm.go (BasicMPSM, PartitionedMPSM)
//   - Verification: verify.go (EqualMultiset, Digest)
package mpsm
