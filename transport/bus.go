// Package transport implements the process-group messaging substrate:
// reliable, ordered point-to-point send/receive between pairs of
// ranks. Two implementations satisfy the same Bus interface: MemBus
// (in-process channels, used by the tests) and TCPBus (real sockets,
// used when each rank is its own process). Grounded on mpi4py's comm.send/comm.recv/comm.isend
// calls throughout master.py/slave.py.
package transport

import "github.com/nagielhachem/Distributed-Memory/apc"

// Envelope is the tagged message passed over the wire: a Tag naming
// the operation and an operation-specific Payload.
type Envelope struct {
	Tag     apc.Tag
	Payload any
}

// Bus is a point-to-point, per-ordered-pair-FIFO messaging substrate.
// Send is always non-blocking from the caller's point of view up to
// the implementation's backpressure limit; Recv blocks until a message
// addressed to (from -> self) is available.
//
// Implementations must preserve order: given two sends from `a` to `b`
// in order m1, m2, Recv(b, a) must yield m1 before m2.
type Bus interface {
	Send(from, to apc.Rank, env Envelope) error
	Recv(self, from apc.Rank) (Envelope, error)
	// Close releases any resources held for rank `self`. Safe to call
	// once a rank's main loop has processed a close envelope.
	Close(self apc.Rank) error
}
