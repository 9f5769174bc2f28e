package coord

import (
	"sort"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
)

// rankedElements is one worker's contribution to a block's merged read
// result, tagged with the rank it came from so mergeReads can order
// contributions correctly regardless of the order replies arrived in.
type rankedElements struct {
	rank     apc.Rank
	elements []int64
}

// mergeReads assembles the per-block element sequences: group by
// BlockId, stable-sort each block's contributing subrequests by
// ascending rank, concatenate their elements in that order, and return
// the distinct blocks referenced ordered ascending by BlockId.
//
// The stable sort by rank matters even though split always walks
// fragments in ascending rank order within a single descriptor: a
// batch of several descriptors touching the same block in different
// rank orders (e.g. one descriptor covering only the block's tail
// fragment, collected before a second descriptor covering its head
// fragment) would otherwise concatenate contributions out of order.
func mergeReads(descs []meta.Slice, byBlock map[meta.BlockId][]rankedElements) [][]int64 {
	var ids []meta.BlockId
	seen := make(map[meta.BlockId]bool, len(descs))
	for _, d := range descs {
		if !seen[d.Key] {
			seen[d.Key] = true
			ids = append(ids, d.Key)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([][]int64, len(ids))
	for i, id := range ids {
		contributions := byBlock[id]
		sort.SliceStable(contributions, func(i, j int) bool { return contributions[i].rank < contributions[j].rank })
		elements := []int64{}
		for _, c := range contributions {
			elements = append(elements, c.elements...)
		}
		out[i] = elements
	}
	return out
}
