package coord

import (
	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
)

// Subrequest is one fragment's share of a descriptor, in that
// fragment's own local coordinates — the unit actually sent over the
// wire to a worker.
type Subrequest struct {
	Rank       apc.Rank
	Key        meta.BlockId
	LocalStart int
	LocalStop  int
	Step       int
}

// split translates a global descriptor into one Subrequest per
// fragment it touches, preserving the global stride across fragment
// boundaries. Grounded on master.py's `Master.split_request`, but
// re-derived from its stride-phase invariant rather than transcribed
// line for line: walking the cursor forward by the fragment's own
// local length (as the original does) loses stride alignment across a
// fragment boundary whenever that length isn't a multiple of Step,
// producing wrong elements on multi-fragment non-unit strides. Instead
// this tracks p, the next global position the descriptor actually
// visits, and advances it by whole strides.
//
// For each fragment (r, fstart, flen), in ascending LogicalStart order:
//  1. Stop entirely once p reaches d.Stop.
//  2. Skip the fragment if p has already passed its end.
//  3. localBound = min(flen, d.Stop-fstart) is the fragment-local view
//     of d.Stop. localStart = p-fstart. If localStart reaches
//     localBound, this fragment holds nothing for this descriptor.
//  4. Otherwise emit (r, key, localStart, localBound, step): Go's
//     strided copy over [localStart, localBound) picks exactly
//     ceil((localBound-localStart)/step) elements, by construction the
//     fragment's share of the descriptor's positions.
//  5. Advance p by that many whole strides.
func split(fragments meta.Fragments, d meta.Slice) []Subrequest {
	var out []Subrequest
	p, k := d.Start, d.Step
	for _, f := range fragments {
		if p >= d.Stop {
			break
		}
		fragEnd := f.LogicalStart + f.Length
		if p >= fragEnd {
			continue
		}
		localBound := f.Length
		if d.Stop-f.LogicalStart < localBound {
			localBound = d.Stop - f.LogicalStart
		}
		localStart := p - f.LogicalStart
		if localStart >= localBound {
			continue
		}
		count := meta.CeilDiv(localBound-localStart, k)
		out = append(out, Subrequest{Rank: f.Rank, Key: d.Key, LocalStart: localStart, LocalStop: localBound, Step: k})
		p += count * k
	}
	return out
}
