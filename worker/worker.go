// Package worker implements the worker rank: local element storage,
// addressed only by the coordinator, never by the client. Grounded on
// slave.py's Slave class.
package worker

import (
	"fmt"

	"github.com/OneOfOne/xxhash"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn/nlog"
	"github.com/nagielhachem/Distributed-Memory/transport"
)

// Worker holds one rank's share of every block it has been allocated
// space in, keyed by BlockId — mirroring slave.py's `self.memory` dict
// of lists.
type Worker struct {
	bus  transport.Bus
	self apc.Rank
	mem  map[meta.BlockId][]int64
}

// New builds a worker for the given rank.
func New(bus transport.Bus, self apc.Rank) *Worker {
	return &Worker{bus: bus, self: self, mem: make(map[meta.BlockId][]int64)}
}

// Run parks on the coordinator's inbound channel and applies each
// message in turn, exactly as slave.py's main loop does. Returns nil
// on a close tag.
func (w *Worker) Run() error {
	for {
		env, err := w.bus.Recv(w.self, apc.RankCoordinator)
		if err != nil {
			return err
		}
		switch env.Tag {
		case apc.TagClose:
			return nil
		case apc.TagAlloc:
			msg := env.Payload.(transport.WorkerAllocMsg)
			w.alloc(msg)
		case apc.TagRead:
			msg := env.Payload.(transport.WorkerReadMsg)
			if err := w.read(msg); err != nil {
				return err
			}
		case apc.TagWrite:
			msg := env.Payload.(transport.WorkerWriteMsg)
			w.write(msg)
		case apc.TagDelete:
			msg := env.Payload.(transport.WorkerDeleteMsg)
			w.delete(msg)
		default:
			nlog.Warningf("worker %d: unrecognized tag %s, ignoring", w.self, env.Tag)
		}
	}
}

func (w *Worker) alloc(msg transport.WorkerAllocMsg) {
	w.mem[msg.Id] = make([]int64, msg.Length)
}

// read is the only message type a worker ever replies to.
func (w *Worker) read(msg transport.WorkerReadMsg) error {
	local := w.mem[msg.Id]
	elements := make([]int64, 0, meta.CeilDiv(msg.LocalStop-msg.LocalStart, msg.Step))
	for i := msg.LocalStart; i < msg.LocalStop; i += msg.Step {
		elements = append(elements, local[i])
	}
	return w.bus.Send(w.self, apc.RankCoordinator, transport.Envelope{
		Tag:     apc.TagRead,
		Payload: transport.WorkerReadReply{Id: msg.Id, Elements: elements},
	})
}

func (w *Worker) write(msg transport.WorkerWriteMsg) {
	local := w.mem[msg.Id]
	j := 0
	for i := msg.LocalStart; i < msg.LocalStop; i += msg.Step {
		local[i] = msg.Values[j]
		j++
	}
	if nlog.V(3) {
		sum := checksum(msg.Values)
		nlog.Infof("worker %d: wrote block %d [%d:%d:%d] xxhash=%x", w.self, msg.Id, msg.LocalStart, msg.LocalStop, msg.Step, sum)
	}
}

func (w *Worker) delete(msg transport.WorkerDeleteMsg) {
	delete(w.mem, msg.Id)
}

// checksum fingerprints a written sub-sequence for the verbose
// integrity log line above.
func checksum(values []int64) uint64 {
	h := xxhash.New64()
	for _, v := range values {
		fmt.Fprintf(h, "%d,", v)
	}
	return h.Sum64()
}
