// Package client implements the client rank: the sole process issuing
// requests to the coordinator over the wire protocol. Grounded on
// generator.py's DistributedMemory facade and allocator.py's launch
// shape, reworked into explicit Go entry points (Allocate, Read,
// Write, Delete, Close) instead of Python's `__setitem__`/
// `__getitem__` operator overloading.
package client

import (
	"fmt"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn"
	"github.com/nagielhachem/Distributed-Memory/cmn/nlog"
	"github.com/nagielhachem/Distributed-Memory/transport"
)

// Value re-exports transport.Value for callers of Write.
type Value = transport.Value

func ScalarValue(x int64) Value    { return transport.ScalarValue(x) }
func SeriesValue(xs []int64) Value { return transport.SeriesValue(xs) }

// Client is a thin wire-protocol facade: one method per wire
// operation, each a blocking send to the coordinator followed by a
// blocking receive of its reply.
type Client struct {
	bus transport.Bus
}

// New builds a client bound to bus. The process running this Client
// must itself hold apc.RankClient on bus.
func New(bus transport.Bus) *Client {
	return &Client{bus: bus}
}

func (c *Client) roundTrip(tag apc.Tag, payload any) (transport.Envelope, error) {
	if err := c.bus.Send(apc.RankClient, apc.RankCoordinator, transport.Envelope{Tag: tag, Payload: payload}); err != nil {
		return transport.Envelope{}, err
	}
	return c.bus.Recv(apc.RankClient, apc.RankCoordinator)
}

// Allocate requests a fresh block of size elements.
func (c *Client) Allocate(size int) (meta.BlockId, error) {
	env, err := c.roundTrip(apc.TagAlloc, transport.AllocReq{Size: size})
	if err != nil {
		return 0, err
	}
	resp := env.Payload.(transport.AllocResp)
	if resp.Id == transport.AllocOOM {
		return 0, cmn.ErrOutOfMemory
	}
	return resp.Id, nil
}

// Read evaluates a batch of slice descriptors, returning one element
// sequence per distinct block referenced, ascending by BlockId.
func (c *Client) Read(descs []meta.Slice) ([][]int64, error) {
	env, err := c.roundTrip(apc.TagRead, transport.ReadReq{Descs: descs})
	if err != nil {
		return nil, err
	}
	if errResp, ok := env.Payload.(transport.ErrorResp); ok {
		return nil, codeToErr(errResp.Code)
	}
	return env.Payload.(transport.ReadResp).Blocks, nil
}

// Write applies value across the positions named by descs: a scalar
// broadcasts to every position; a series is sized to the first
// descriptor's cardinality and broadcast identically to every block
// the batch touches.
func (c *Client) Write(descs []meta.Slice, value Value) error {
	env, err := c.roundTrip(apc.TagWrite, transport.WriteReq{Descs: descs, Value: value})
	if err != nil {
		return err
	}
	if errResp, ok := env.Payload.(transport.ErrorResp); ok {
		return codeToErr(errResp.Code)
	}
	return nil
}

// Delete frees the blocks named by ids in order, stopping at the
// first unknown id without rolling back ids already freed.
func (c *Client) Delete(ids []meta.BlockId) error {
	env, err := c.roundTrip(apc.TagDelete, transport.DeleteReq{Ids: ids})
	if err != nil {
		return err
	}
	if errResp, ok := env.Payload.(transport.ErrorResp); ok {
		return codeToErr(errResp.Code)
	}
	return nil
}

// Close sends the shutdown tag, terminating the coordinator and, via
// its broadcast, every worker.
func (c *Client) Close() error {
	nlog.Infoln("client: closing")
	return c.bus.Send(apc.RankClient, apc.RankCoordinator, transport.Envelope{Tag: apc.TagClose})
}

func codeToErr(code int) error {
	switch code {
	case cmn.CodeUnknownKey:
		return cmn.ErrUnknownKey
	case cmn.CodeTooLarge:
		return cmn.ErrTooLarge
	case cmn.CodeSizeMismatch:
		return cmn.ErrSizeMismatch
	default:
		return fmt.Errorf("client: request failed with code %d", code)
	}
}
