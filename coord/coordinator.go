// Package coord implements the coordinator rank: the single process
// holding the placement table and capacity vector, admitting client
// requests, splitting them into worker subrequests, and merging the
// replies.
package coord

import (
	"go.uber.org/atomic"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn"
	"github.com/nagielhachem/Distributed-Memory/cmn/nlog"
	"github.com/nagielhachem/Distributed-Memory/stats"
	"github.com/nagielhachem/Distributed-Memory/transport"
	"github.com/teris-io/shortid"
)

// Coordinator holds the coordinator rank's state and runs its
// single-threaded main loop. Never touched from more than one
// goroutine: ReadSlices' errgroup runs its sends on one extra
// goroutine that only uses the bus, not the rest of this struct.
type Coordinator struct {
	bus      transport.Bus
	table    *meta.PlacementTable
	capacity *meta.Capacity
	nextID   atomic.Int64
}

// NewCoordinator builds a coordinator for nWorkers workers, each
// starting with maxSize free elements.
func NewCoordinator(bus transport.Bus, nWorkers, maxSize int) *Coordinator {
	return &Coordinator{
		bus:      bus,
		table:    meta.NewPlacementTable(),
		capacity: meta.NewCapacity(nWorkers, maxSize),
	}
}

func (c *Coordinator) sendTo(to apc.Rank, tag apc.Tag, payload any) error {
	return c.bus.Send(apc.RankCoordinator, to, transport.Envelope{Tag: tag, Payload: payload})
}

func (c *Coordinator) broadcastClose() {
	for ord := 0; ord < c.capacity.NumWorkers(); ord++ {
		_ = c.sendTo(meta.RankFor(ord), apc.TagClose, nil)
	}
}

// Run parks on the client's inbound channel and dispatches each
// request to completion before looping back; awaiting a client
// request is the coordinator's only state. Returns nil once a close
// tag forwards shutdown to every worker.
func (c *Coordinator) Run() error {
	nlog.Infoln("coordinator: awaiting client requests")
	for {
		env, err := c.bus.Recv(apc.RankCoordinator, apc.RankClient)
		if err != nil {
			return err
		}

		trace, _ := shortid.Generate()
		if nlog.V(1) {
			nlog.Infof("coordinator: trace=%s tag=%s", trace, env.Tag)
		}

		switch env.Tag {
		case apc.TagClose:
			nlog.Infoln("coordinator: closing")
			c.broadcastClose()
			return nil

		case apc.TagAlloc:
			req := env.Payload.(transport.AllocReq)
			id, err := c.Allocate(req.Size)
			if err != nil {
				id = transport.AllocOOM
			}
			if err := c.sendTo(apc.RankClient, apc.TagAlloc, transport.AllocResp{Id: id}); err != nil {
				return err
			}

		case apc.TagRead:
			req := env.Payload.(transport.ReadReq)
			blocks, err := c.ReadSlices(req.Descs)
			if err != nil {
				c.countFailure(err)
				if err := c.sendTo(apc.RankClient, apc.TagRead, transport.ErrorResp{Code: cmn.CodeOf(err)}); err != nil {
					return err
				}
				continue
			}
			if err := c.sendTo(apc.RankClient, apc.TagRead, transport.ReadResp{Blocks: blocks}); err != nil {
				return err
			}

		case apc.TagWrite:
			req := env.Payload.(transport.WriteReq)
			err := c.WriteSlices(req.Descs, req.Value)
			if err != nil {
				c.countFailure(err)
				if err := c.sendTo(apc.RankClient, apc.TagWrite, transport.ErrorResp{Code: cmn.CodeOf(err)}); err != nil {
					return err
				}
				continue
			}
			if err := c.sendTo(apc.RankClient, apc.TagWrite, nil); err != nil {
				return err
			}

		case apc.TagDelete:
			req := env.Payload.(transport.DeleteReq)
			err := c.DeleteBlocks(req.Ids)
			if err != nil {
				c.countFailure(err)
				if err := c.sendTo(apc.RankClient, apc.TagDelete, transport.ErrorResp{Code: cmn.CodeOf(err)}); err != nil {
					return err
				}
				continue
			}
			if err := c.sendTo(apc.RankClient, apc.TagDelete, nil); err != nil {
				return err
			}

		default:
			nlog.Warningf("coordinator: unrecognized tag %s, ignoring", env.Tag)
		}
	}
}

func (c *Coordinator) countFailure(err error) {
	switch cmn.CodeOf(err) {
	case cmn.CodeUnknownKey:
		stats.UnknownKeyTotal.Inc()
	case cmn.CodeTooLarge:
		stats.TooLargeTotal.Inc()
	}
}
