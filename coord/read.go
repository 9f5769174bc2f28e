package coord

import (
	"golang.org/x/sync/errgroup"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/stats"
	"github.com/nagielhachem/Distributed-Memory/transport"
)

// ReadSlices conforms the batch, splits every descriptor into
// per-worker subrequests, sends them all in subrequest order, then
// collects replies in the same order (the per-rank pair is FIFO, so
// collecting in send order reconstructs each worker's contribution
// correctly even though sends to different workers interleave), and
// merges by block. The result holds one sequence per distinct block,
// ascending by BlockId, so it does not follow the input descriptor
// order when descriptors repeat or reorder block ids.
func (c *Coordinator) ReadSlices(descs []meta.Slice) ([][]int64, error) {
	if err := conform(c.table, c.capacity.MaxSize(), descs); err != nil {
		return nil, err
	}

	var subreqs []Subrequest
	for i := range descs {
		fs, _ := c.table.Lookup(descs[i].Key)
		subreqs = append(subreqs, split(fs, descs[i])...)
	}
	stats.SubrequestsPerRead.Observe(float64(len(subreqs)))

	g := new(errgroup.Group)
	g.Go(func() error {
		for _, sr := range subreqs {
			if err := c.sendTo(sr.Rank, apc.TagRead, transport.WorkerReadMsg{
				Id: sr.Key, LocalStart: sr.LocalStart, LocalStop: sr.LocalStop, Step: sr.Step,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byBlock := make(map[meta.BlockId][]rankedElements, len(descs))
	for _, sr := range subreqs {
		env, err := c.bus.Recv(apc.RankCoordinator, sr.Rank)
		if err != nil {
			return nil, err
		}
		reply := env.Payload.(transport.WorkerReadReply)
		byBlock[reply.Id] = append(byBlock[reply.Id], rankedElements{rank: sr.Rank, elements: reply.Elements})
	}

	stats.ReadTotal.Inc()
	return mergeReads(descs, byBlock), nil
}
