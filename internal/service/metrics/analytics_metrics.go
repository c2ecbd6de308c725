package metrics

import (
    "sync"

    "github.com/prometheus/client_golang/prometheus"
)

var (
    once sync.Once

    AnalysisLatency = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "nftcast",
            Subsystem: "analysis",
            Name:      "latency_seconds",
            Help:      "End-to-end latency of analysis use cases",
            Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
        },
        []string{"usecase"},
    )

    AnalysisErrors = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "nftcast",
            Subsystem: "analysis",
            Name:      "errors_total",
            Help:      "Analysis failures by use case and stage",
        },
        []string{"usecase", "stage"},
    )

    HistorySource = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "nftcast",
            Subsystem: "analysis",
            Name:      "history_source_total",
            Help:      "Which history backed each analysis",
        },
        []string{"source"},
    )

    LiveSessions = prometheus.NewGauge(
        prometheus.GaugeOpts{
            Namespace: "nftcast",
            Subsystem: "live",
            Name:      "sessions",
            Help:      "Open live price streams",
        },
    )
)

// Register adds the collectors to the default registry; repeated calls are no-ops.
func Register() {
    once.Do(func() {
        prometheus.MustRegister(AnalysisLatency, AnalysisErrors, HistorySource, LiveSessions)
    })
}
