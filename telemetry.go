package zone

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// chunksTotal tracks the number of chunks acquired across all zones.
	chunksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zone_chunks_total",
			Help: "Total number of chunks acquired by zones",
		},
	)

	// allocatedBytes tracks heap bytes acquired, by acquisition kind.
	allocatedBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zone_allocated_bytes_total",
			Help: "Total heap bytes acquired by zones",
		},
		[]string{"kind"}, // "chunk_init", "chunk_grow", "ledger"
	)

	// finalizersTotal tracks finalizer registrations across all zones.
	finalizersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zone_finalizers_total",
			Help: "Total number of finalizers registered in zones",
		},
	)

	// clearsTotal tracks Clear operations across all zones.
	clearsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zone_clears_total",
			Help: "Total number of zone clears",
		},
	)
)
