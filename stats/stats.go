// Package stats exposes the coordinator's Prometheus counters.
package stats

import "github.com/prometheus/client_golang/prometheus"

const namespace = "distmem"

var (
	AllocTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "allocate_total", Help: "Total allocate requests handled.",
	})
	OOMTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "oom_total", Help: "Total allocate requests that failed with OutOfMemory.",
	})
	ReadTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "read_total", Help: "Total read requests handled.",
	})
	WriteTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "write_total", Help: "Total write requests handled.",
	})
	DeleteTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "delete_total", Help: "Total delete requests handled.",
	})
	UnknownKeyTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "unknown_key_total", Help: "Total requests that failed with UnknownKey.",
	})
	TooLargeTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "too_large_total", Help: "Total requests that failed the conformance size check.",
	})
	SubrequestsPerRead = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "subrequests_per_read", Help: "Number of worker subrequests a single read fans out to.",
		Buckets: prometheus.LinearBuckets(1, 1, 8),
	})
)

// Registry bundles the above collectors. cmd/coordinator serves it at
// /metrics when started with --metrics-listen.
func Registry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(AllocTotal, OOMTotal, ReadTotal, WriteTotal, DeleteTotal,
		UnknownKeyTotal, TooLargeTotal, SubrequestsPerRead)
	return r
}
