package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
)

func TestMergeReads_OrdersByBlockIdAscending(t *testing.T) {
	descs := []meta.Slice{{Key: 5}, {Key: 1}}
	byBlock := map[meta.BlockId][]rankedElements{
		5: {{rank: apc.RankWorkerBase, elements: []int64{50, 51}}},
		1: {{rank: apc.RankWorkerBase, elements: []int64{10}}},
	}
	assert.Equal(t, [][]int64{{10}, {50, 51}}, mergeReads(descs, byBlock))
}

func TestMergeReads_MissingBlockYieldsEmptySlice(t *testing.T) {
	descs := []meta.Slice{{Key: 3}}
	assert.Equal(t, [][]int64{{}}, mergeReads(descs, map[meta.BlockId][]rankedElements{}))
}

func TestMergeReads_DuplicateKeyCollapsesToOneEntry(t *testing.T) {
	descs := []meta.Slice{{Key: 1}, {Key: 1}}
	byBlock := map[meta.BlockId][]rankedElements{
		1: {{rank: apc.RankWorkerBase, elements: []int64{1, 2, 3}}},
	}
	assert.Equal(t, [][]int64{{1, 2, 3}}, mergeReads(descs, byBlock))
}

func TestMergeReads_SortsContributionsByAscendingRank(t *testing.T) {
	descs := []meta.Slice{{Key: 0}}
	byBlock := map[meta.BlockId][]rankedElements{
		0: {
			{rank: apc.RankWorkerBase + 1, elements: []int64{4, 5, 6, 7}},
			{rank: apc.RankWorkerBase, elements: []int64{0, 1, 2, 3}},
		},
	}
	assert.Equal(t, [][]int64{{0, 1, 2, 3, 4, 5, 6, 7}}, mergeReads(descs, byBlock))
}
