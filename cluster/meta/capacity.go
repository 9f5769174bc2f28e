package meta

import "github.com/nagielhachem/Distributed-Memory/apc"

// Capacity is the per-worker free-element vector, indexed by worker
// ordinal (rank - apc.RankWorkerBase). Grounded on master.py's
// slave_size list, initialized to [max_size] * nb_slaves.
//
// Invariant: 0 <= Capacity[i] <= maxSize for every i, at all times.
type Capacity struct {
	free    []int
	maxSize int
}

// NewCapacity builds a capacity vector for nWorkers workers, each
// starting with maxSize free elements.
func NewCapacity(nWorkers, maxSize int) *Capacity {
	free := make([]int, nWorkers)
	for i := range free {
		free[i] = maxSize
	}
	return &Capacity{free: free, maxSize: maxSize}
}

// NumWorkers returns the fixed worker count; cluster membership never
// changes once a coordinator starts.
func (c *Capacity) NumWorkers() int { return len(c.free) }

// MaxSize returns the configured per-worker capacity, also the
// conformance check's TooLarge threshold (see DESIGN.md Open Question
// 2).
func (c *Capacity) MaxSize() int { return c.maxSize }

// Free returns the free element count for the worker at ordinal i.
func (c *Capacity) Free(ordinal int) int { return c.free[ordinal] }

// Total sums free space across all workers.
func (c *Capacity) Total() int {
	total := 0
	for _, f := range c.free {
		total += f
	}
	return total
}

// Take decrements the free count for ordinal i by n. Callers must have
// already verified n <= Free(i).
func (c *Capacity) Take(ordinal, n int) { c.free[ordinal] -= n }

// RankFor converts a worker ordinal to its process-group rank.
func RankFor(ordinal int) apc.Rank { return apc.WorkerRank(ordinal) }
