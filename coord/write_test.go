package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn"
	"github.com/nagielhachem/Distributed-Memory/transport"
)

// capturingBus records every envelope sent so tests can inspect
// exactly what WriteSlices handed each rank.
type capturingBus struct {
	sent []transport.Envelope
}

func (b *capturingBus) Send(_, _ apc.Rank, env transport.Envelope) error {
	b.sent = append(b.sent, env)
	return nil
}
func (b *capturingBus) Recv(apc.Rank, apc.Rank) (transport.Envelope, error) { select {} }
func (b *capturingBus) Close(apc.Rank) error                                { return nil }

var _ transport.Bus = (*capturingBus)(nil)

func TestWriteSlices_TotalComesFromFirstDescriptorOnly(t *testing.T) {
	cd := NewCoordinator(nil, 3, 8)
	bus := &capturingBus{}
	cd.bus = bus

	a, err := cd.Allocate(4)
	require.NoError(t, err)
	b, err := cd.Allocate(4)
	require.NoError(t, err)

	descs := []meta.Slice{
		{Key: a, Start: 0, Stop: 4, Step: 1},
		{Key: b, Start: 0, Stop: 4, Step: 1},
	}
	err = cd.WriteSlices(descs, SeriesValue([]int64{10, 20, 30, 40}))
	assert.NoError(t, err, "a 4-element series must satisfy the first descriptor's cardinality even though the batch touches two blocks")
}

func TestWriteSlices_RejectsSeriesSizedToBatchTotalInstead(t *testing.T) {
	cd := NewCoordinator(nil, 3, 4)
	bus := &capturingBus{}
	cd.bus = bus

	a, err := cd.Allocate(2)
	require.NoError(t, err)
	b, err := cd.Allocate(2)
	require.NoError(t, err)

	descs := []meta.Slice{
		{Key: a, Start: 0, Stop: 2, Step: 1},
		{Key: b, Start: 0, Stop: 2, Step: 1},
	}
	err = cd.WriteSlices(descs, SeriesValue([]int64{1, 2, 3, 4}))
	assert.Same(t, cmn.ErrSizeMismatch, err, "series sized to the whole batch, not the first descriptor, must be rejected")
}

func TestWriteSlices_ShiftResetsPerDistinctBlock(t *testing.T) {
	cd := NewCoordinator(nil, 3, 4)
	bus := &capturingBus{}
	cd.bus = bus

	a, err := cd.Allocate(2)
	require.NoError(t, err)
	b, err := cd.Allocate(2)
	require.NoError(t, err)

	bus.sent = nil // drop the alloc messages recorded above

	descs := []meta.Slice{
		{Key: a, Start: 0, Stop: 2, Step: 1},
		{Key: b, Start: 0, Stop: 2, Step: 1},
	}
	require.NoError(t, cd.WriteSlices(descs, SeriesValue([]int64{10, 20})))

	require.Len(t, bus.sent, 2)
	msgA := bus.sent[0].Payload.(transport.WorkerWriteMsg)
	msgB := bus.sent[1].Payload.(transport.WorkerWriteMsg)
	assert.Equal(t, []int64{10, 20}, msgA.Values, "block a must receive the full broadcast value")
	assert.Equal(t, []int64{10, 20}, msgB.Values, "block b must receive the same broadcast value, not the tail of a shared stream")
}
