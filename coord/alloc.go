package coord

import (
	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn"
	"github.com/nagielhachem/Distributed-Memory/cmn/cos"
	"github.com/nagielhachem/Distributed-Memory/cmn/debug"
	"github.com/nagielhachem/Distributed-Memory/transport"
	"github.com/nagielhachem/Distributed-Memory/stats"
)

// chooseFragments is first-fit placement: walk worker ordinals
// ascending, taking as much of each worker's free space as needed
// before moving to the next. Returns ErrOutOfMemory without mutating
// cap if the sum of free space across all workers falls short of
// size.
func chooseFragments(cap *meta.Capacity, size int) (meta.Fragments, error) {
	debug.Assert(size >= 1, "allocate: size must be at least 1", size)
	if cap.Total() < size {
		return nil, cmn.ErrOutOfMemory
	}
	var frags meta.Fragments
	cursor, remaining := 0, size
	for ord := 0; ord < cap.NumWorkers() && remaining > 0; ord++ {
		free := cap.Free(ord)
		if free == 0 {
			continue
		}
		take := cos.MinI(free, remaining)
		frags = append(frags, meta.Fragment{Rank: meta.RankFor(ord), LogicalStart: cursor, Length: take})
		cursor += take
		remaining -= take
	}
	return frags, nil
}

// Allocate places a new block end to end: place, debit capacity,
// record the block, and notify each worker carrying a fragment of it.
func (c *Coordinator) Allocate(size int) (meta.BlockId, error) {
	frags, err := chooseFragments(c.capacity, size)
	if err != nil {
		stats.OOMTotal.Inc()
		return 0, err
	}
	for _, f := range frags {
		c.capacity.Take(apc.WorkerOrdinal(f.Rank), f.Length)
	}
	id := meta.BlockId(c.nextID.Add(1) - 1)
	c.table.Insert(id, frags)
	for _, f := range frags {
		if err := c.sendTo(f.Rank, apc.TagAlloc, transport.WorkerAllocMsg{Id: id, Length: f.Length}); err != nil {
			return 0, err
		}
	}
	stats.AllocTotal.Inc()
	return id, nil
}
