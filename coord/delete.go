package coord

import (
	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn"
	"github.com/nagielhachem/Distributed-Memory/stats"
	"github.com/nagielhachem/Distributed-Memory/transport"
)

// DeleteBlocks processes ids in order, one at a time: an unknown id
// stops the batch immediately without rolling back ids already
// deleted earlier in the same call, mirroring master.py's
// `Master.delitem`, which breaks out of its loop on the first missing
// key after having already applied `del block_infos[key]` for the
// ones that preceded it. Deleting does not restore the freed fragments
// to the capacity vector (see DESIGN.md Open Question 1), so the
// coordinator never places a new block in space a deleted block held.
func (c *Coordinator) DeleteBlocks(ids []meta.BlockId) error {
	for _, id := range ids {
		fs, ok := c.table.Lookup(id)
		if !ok {
			return cmn.ErrUnknownKey
		}
		for _, f := range fs {
			if err := c.sendTo(f.Rank, apc.TagDelete, transport.WorkerDeleteMsg{Id: id}); err != nil {
				return err
			}
		}
		c.table.Delete(id)
	}
	stats.DeleteTotal.Inc()
	return nil
}
