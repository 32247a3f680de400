package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ballotCastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "election_ballot_casts_total",
		Help: "Ballot cast attempts by outcome",
	}, []string{"status"})

	batchTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "election_batch_transitions_total",
		Help: "Vote batch state transitions",
	}, []string{"transition"})

	streamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "election_stream_subscribers",
		Help: "Currently connected result-stream subscribers",
	})

	snapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "election_result_snapshot_duration_seconds",
		Help:    "Time to recompute a result snapshot",
		Buckets: prometheus.DefBuckets,
	})
)

func ObserveBallotCast(status string) {
	ballotCastsTotal.WithLabelValues(status).Inc()
}

func ObserveBatchTransition(transition string) {
	batchTransitionsTotal.WithLabelValues(transition).Inc()
}

func IncStreamSubscribers() {
	streamSubscribers.Inc()
}

func DecStreamSubscribers() {
	streamSubscribers.Dec()
}

func ObserveSnapshotDuration(seconds float64) {
	snapshotDuration.Observe(seconds)
}
