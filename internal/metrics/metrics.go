package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline counters, labeled by source class / entity kind so one dashboard
// can break a degraded batch down to the offending provider.
var (
	FetchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spacescope_fetch_attempts_total",
		Help: "Outbound fetch attempts by source and result.",
	}, []string{"source", "result"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spacescope_cache_lookups_total",
		Help: "Read-through cache lookups by source and result.",
	}, []string{"source", "result"})

	UpsertOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spacescope_upsert_outcomes_total",
		Help: "Record upsert outcomes by entity kind.",
	}, []string{"kind", "outcome"})

	JobsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spacescope_jobs_completed_total",
		Help: "Ingestion jobs reaching a terminal status, by kind.",
	}, []string{"kind", "status"})
)
