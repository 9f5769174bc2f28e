package client

import "github.com/nagielhachem/Distributed-Memory/cluster/meta"

// These helpers build a meta.Slice for block id without validation
// beyond what conform already performs coordinator-side; they exist
// only to save callers from spelling out meta.Slice{} literals for the
// common cases.

// All reads or writes every position of id, leaving Stop unresolved so
// the coordinator fills it in from the block's live size.
func All(id meta.BlockId) meta.Slice {
	return meta.Slice{Key: id, Start: 0, Stop: meta.StopUnresolved, Step: 1}
}

// Range is a contiguous, unit-stride slice [start, stop).
func Range(id meta.BlockId, start, stop int) meta.Slice {
	return meta.Slice{Key: id, Start: start, Stop: stop, Step: 1}
}

// Strided is a fully general slice [start, stop) by step.
func Strided(id meta.BlockId, start, stop, step int) meta.Slice {
	return meta.Slice{Key: id, Start: start, Stop: stop, Step: step}
}

// At is the single-position slice [i, i+1).
func At(id meta.BlockId, i int) meta.Slice {
	return meta.Slice{Key: id, Start: i, Stop: i + 1, Step: 1}
}
