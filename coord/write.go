package coord

import (
	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn"
	"github.com/nagielhachem/Distributed-Memory/stats"
	"github.com/nagielhachem/Distributed-Memory/transport"
)

// WriteSlices conforms the batch, checks a non-scalar value's length
// against the first descriptor's cardinality T, then splits each
// descriptor in turn and hands each subrequest its window of the
// (possibly scalar-expanded) value sequence. The shift into that value
// sequence resets to 0 every time the subrequest's block changes, so a
// batch spanning several distinct blocks broadcasts the same T-length
// value to each of them rather than treating the batch as one
// contiguous stream — grounded on master.py's `Master.setitem`, which
// resets its own shift counter whenever `key` changes between
// consecutive requests. Workers never reply to a write; this is
// fire-and-forget once admission succeeds.
func (c *Coordinator) WriteSlices(descs []meta.Slice, value Value) error {
	if err := conform(c.table, c.capacity.MaxSize(), descs); err != nil {
		return err
	}

	total := descs[0].Cardinality()
	if !value.IsScalar() && value.Len() != total {
		return cmn.ErrSizeMismatch
	}
	full := value.Expand(total)

	var lastKey meta.BlockId
	haveLastKey := false
	shift := 0
	for i := range descs {
		fs, _ := c.table.Lookup(descs[i].Key)
		for _, sr := range split(fs, descs[i]) {
			if !haveLastKey || sr.Key != lastKey {
				shift = 0
				lastKey = sr.Key
				haveLastKey = true
			}
			n := meta.Slice{Start: sr.LocalStart, Stop: sr.LocalStop, Step: sr.Step}.Cardinality()
			window := full[shift : shift+n]
			shift += n
			if err := c.sendTo(sr.Rank, apc.TagWrite, transport.WorkerWriteMsg{
				Id: sr.Key, LocalStart: sr.LocalStart, LocalStop: sr.LocalStop, Step: sr.Step, Values: window,
			}); err != nil {
				return err
			}
		}
	}
	stats.WriteTotal.Inc()
	return nil
}
