// Package meta holds the coordinator's data model: block ids,
// fragments, the placement table, the capacity vector, and slice
// descriptors. Grounded on master.py's block_infos dict of (rank,
// start, offset) tuples and slave_size list.
package meta

import "github.com/nagielhachem/Distributed-Memory/apc"

// BlockId is a monotonically assigned, never-reused (within a
// coordinator's lifetime) identifier for an allocated block.
type BlockId int64

// Fragment is the portion of a block living on one worker: positions
// [LogicalStart, LogicalStart+Length) of the block reside on Rank.
type Fragment struct {
	Rank         apc.Rank
	LogicalStart int
	Length       int
}

// Fragments of a live block are contiguous, non-overlapping, ascending
// in LogicalStart, and the first always starts at 0.
type Fragments []Fragment

// Size is the block's total element count: the sum of fragment lengths.
func (fs Fragments) Size() int {
	total := 0
	for _, f := range fs {
		total += f.Length
	}
	return total
}

// PlacementTable is the coordinator's exclusive BlockId -> Fragments
// mapping. Mutated only by Allocate (insert) and Delete (remove);
// never by the read/write paths.
type PlacementTable struct {
	blocks map[BlockId]Fragments
}

func NewPlacementTable() *PlacementTable {
	return &PlacementTable{blocks: make(map[BlockId]Fragments)}
}

// Lookup returns the fragment list for id and whether it exists.
func (t *PlacementTable) Lookup(id BlockId) (Fragments, bool) {
	fs, ok := t.blocks[id]
	return fs, ok
}

// SizeOf returns the live block's total size, or 0 if unknown.
func (t *PlacementTable) SizeOf(id BlockId) int {
	fs, ok := t.blocks[id]
	if !ok {
		return 0
	}
	return fs.Size()
}

// Insert records a freshly allocated block's fragment list.
func (t *PlacementTable) Insert(id BlockId, fs Fragments) {
	t.blocks[id] = fs
}

// Delete removes id from the table. No-op if id is unknown (callers
// are expected to have checked Lookup first).
func (t *PlacementTable) Delete(id BlockId) {
	delete(t.blocks, id)
}

// Len reports the number of live blocks, mostly useful in tests.
func (t *PlacementTable) Len() int { return len(t.blocks) }
