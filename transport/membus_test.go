package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagielhachem/Distributed-Memory/apc"
)

func TestMemBus_FIFOPerOrderedPair(t *testing.T) {
	bus := NewMemBus(4)
	require.NoError(t, bus.Send(apc.RankClient, apc.RankCoordinator, Envelope{Tag: apc.TagAlloc}))
	require.NoError(t, bus.Send(apc.RankClient, apc.RankCoordinator, Envelope{Tag: apc.TagRead}))

	first, err := bus.Recv(apc.RankCoordinator, apc.RankClient)
	require.NoError(t, err)
	second, err := bus.Recv(apc.RankCoordinator, apc.RankClient)
	require.NoError(t, err)

	assert.Equal(t, apc.TagAlloc, first.Tag)
	assert.Equal(t, apc.TagRead, second.Tag)
}

func TestMemBus_SeparatesPairsByDirection(t *testing.T) {
	bus := NewMemBus(2)
	require.NoError(t, bus.Send(apc.RankCoordinator, apc.RankWorkerBase, Envelope{Tag: apc.TagAlloc}))
	require.NoError(t, bus.Send(apc.RankWorkerBase, apc.RankCoordinator, Envelope{Tag: apc.TagRead}))

	toWorker, err := bus.Recv(apc.RankWorkerBase, apc.RankCoordinator)
	require.NoError(t, err)
	assert.Equal(t, apc.TagAlloc, toWorker.Tag)

	toCoordinator, err := bus.Recv(apc.RankCoordinator, apc.RankWorkerBase)
	require.NoError(t, err)
	assert.Equal(t, apc.TagRead, toCoordinator.Tag)
}
