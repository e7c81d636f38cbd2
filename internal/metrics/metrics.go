package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AgentRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animai_agent_requests_total",
		Help: "Egg reply requests sent to the agent provider, by result (ok, fallback).",
	}, []string{"provider", "result"})

	AgentLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "animai_agent_request_duration_seconds",
		Help:    "Latency of egg reply requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	EggsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "animai_eggs_created_total",
		Help: "Eggs created on a user's first message.",
	})

	PetsHatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animai_pets_hatched_total",
		Help: "Pets hatched, by species.",
	}, []string{"species"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animai_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})
)
