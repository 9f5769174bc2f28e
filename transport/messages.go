package transport

import "github.com/nagielhachem/Distributed-Memory/cluster/meta"

// Value is the write path's `int | list[int]` union, expressed as a
// small sum type instead of `any` at the call site.
type Value struct {
	scalar   int64
	series   []int64
	isScalar bool
}

// ScalarValue wraps a single integer to be broadcast across a
// descriptor's whole cardinality.
func ScalarValue(x int64) Value { return Value{scalar: x, isScalar: true} }

// SeriesValue wraps an explicit sequence of values.
func SeriesValue(xs []int64) Value { return Value{series: xs} }

func (v Value) IsScalar() bool { return v.isScalar }

// Expand materializes v as a length-n sequence: n copies of the scalar,
// or the series unchanged (callers are expected to have already
// checked the series' length against n via Len/ErrSizeMismatch).
func (v Value) Expand(n int) []int64 {
	if v.isScalar {
		out := make([]int64, n)
		for i := range out {
			out[i] = v.scalar
		}
		return out
	}
	return v.series
}

// Len returns the series length, or -1 for a scalar (a scalar has no
// fixed length until Expand is told one).
func (v Value) Len() int {
	if v.isScalar {
		return -1
	}
	return len(v.series)
}

// --- Client <-> Coordinator payloads ---

type AllocReq struct {
	Size int
}

// AllocResp carries the fresh BlockId, or AllocOOM on OutOfMemory — no
// separate error envelope is used for this one operation.
type AllocResp struct {
	Id meta.BlockId
}

const AllocOOM meta.BlockId = -1

type ReadReq struct {
	Descs []meta.Slice
}

// ReadResp carries one element sequence per distinct block referenced,
// ordered ascending by BlockId.
type ReadResp struct {
	Blocks [][]int64
}

type WriteReq struct {
	Descs []meta.Slice
	Value Value
}

type DeleteReq struct {
	Ids []meta.BlockId
}

// ErrorResp is the failure-path payload for read/write/delete. Alloc's
// failure is AllocResp{AllocOOM}, which needs no separate envelope
// shape.
type ErrorResp struct {
	Code int
}

// --- Coordinator <-> Worker payloads ---

type WorkerAllocMsg struct {
	Id     meta.BlockId
	Length int
}

type WorkerReadMsg struct {
	Id         meta.BlockId
	LocalStart int
	LocalStop  int
	Step       int
}

// WorkerReadReply is the only message a worker ever initiates, always
// in reply to a WorkerReadMsg.
type WorkerReadReply struct {
	Id       meta.BlockId
	Elements []int64
}

type WorkerWriteMsg struct {
	Id         meta.BlockId
	LocalStart int
	LocalStop  int
	Step       int
	Values     []int64
}

type WorkerDeleteMsg struct {
	Id meta.BlockId
}
