package coord

import "github.com/nagielhachem/Distributed-Memory/transport"

// Value re-exports transport.Value under the coord package, so callers
// of Coordinator.WriteSlices never need to import transport directly.
type Value = transport.Value

func ScalarValue(x int64) Value    { return transport.ScalarValue(x) }
func SeriesValue(xs []int64) Value { return transport.SeriesValue(xs) }
