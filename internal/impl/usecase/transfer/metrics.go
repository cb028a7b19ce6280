package impl_transfer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	orchestrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transfers_orchestrations_total",
		Help: "Orchestration runs by terminal status",
	}, []string{"status"})

	stepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transfers_step_duration_seconds",
		Help:    "Latency of each orchestration step",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 30},
	}, []string{"step"})

	abandonedQuotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transfers_abandoned_quotes_total",
		Help: "Quotes obtained but never used because the run was cancelled",
	})
)
