package coord

import (
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn"
)

// conform is the request-admission check: resolve every `stop=-1`
// against the block's live size, reject an unknown key, and reject a
// batch whose running cardinality total exceeds maxSize — the
// per-worker element cap, also used cluster-wide as the single-request
// ceiling (see DESIGN.md for why). descs is mutated in place so
// callers downstream (split, the cardinality-based write value check)
// never see an unresolved stop.
func conform(table *meta.PlacementTable, maxSize int, descs []meta.Slice) error {
	total := 0
	for i := range descs {
		d := &descs[i]
		fs, ok := table.Lookup(d.Key)
		if !ok {
			return cmn.ErrUnknownKey
		}
		if d.Stop == meta.StopUnresolved {
			d.Stop = fs.Size()
		}
		total += d.Cardinality()
		if total > maxSize {
			return cmn.ErrTooLarge
		}
	}
	return nil
}
