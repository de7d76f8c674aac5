package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsdash_intents_enqueued_total",
		Help: "Total number of mutation intents placed on the dispatch queue.",
	})

	IntentsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsdash_intents_dropped_total",
		Help: "Total number of intents rejected due to a full queue.",
	})

	IntentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsdash_intents_processed_total",
		Help: "Total number of intents processed, labelled by kind and outcome.",
	}, []string{"kind", "status"})

	IntentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "opsdash_intent_duration_ms",
		Help:    "End-to-end intent dispatch latency in milliseconds.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 1000},
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "opsdash_queue_utilization_ratio",
		Help: "Current intent queue utilization (0–1).",
	})

	LayoutComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsdash_layout_computations_total",
		Help: "Total number of hierarchy layout passes, labelled by view and outcome.",
	}, []string{"view", "status"})

	LayoutNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "opsdash_layout_nodes",
		Help: "Number of nodes placed by the most recent layout pass per view.",
	}, []string{"view"})

	ConfigReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsdash_config_reloads_total",
		Help: "Total number of configuration reload attempts, labelled by outcome.",
	}, []string{"status"})
)
