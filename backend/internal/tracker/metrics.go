package tracker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// actionsRecorded counts recording attempts by action status and outcome
	actionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "action_graph_actions_recorded_total",
		Help: "Recorded tool invocations by action status and recording outcome",
	}, []string{"status", "outcome"})

	// queryDuration tracks analytical query latency
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "action_graph_query_duration_seconds",
		Help:    "Analytical query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
	}, []string{"operation", "outcome"})
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func observeQuery(operation string, start time.Time, err error) {
	queryDuration.WithLabelValues(operation, outcome(err)).Observe(time.Since(start).Seconds())
}
