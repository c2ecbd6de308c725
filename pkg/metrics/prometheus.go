package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"NFTCast/internal/domain/repository"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecasts    *prometheus.CounterVec
	forecastTime *prometheus.HistogramVec
	upstream     *prometheus.CounterVec
	upstreamTime *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	floorPrice   *prometheus.GaugeVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

var _ repository.Metrics = (*Recorder)(nil)

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors with reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		forecasts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nftcast_forecasts_total",
				Help: "Forecasts produced per model, split by fallback usage",
			},
			[]string{"model", "degraded"},
		),
		forecastTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nftcast_forecast_duration_seconds",
				Help:    "Time spent running a single forecaster",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"model"},
		),
		upstream: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nftcast_upstream_requests_total",
				Help: "Marketplace API calls by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		upstreamTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nftcast_upstream_duration_seconds",
				Help:    "Marketplace API latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nftcast_cache_lookups_total",
				Help: "Marketplace cache lookups by result",
			},
			[]string{"result"},
		),
		floorPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nftcast_floor_price",
				Help: "Last observed collection floor price",
			},
			[]string{"collection"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nftcast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nftcast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordForecast records one forecaster run.
func (r *Recorder) RecordForecast(model string, degraded bool, seconds float64) {
	r.forecasts.WithLabelValues(model, strconv.FormatBool(degraded)).Inc()
	r.forecastTime.WithLabelValues(model).Observe(seconds)
}

// RecordUpstream records a marketplace call. Status 0 means no response.
func (r *Recorder) RecordUpstream(endpoint string, status int, seconds float64) {
	r.upstream.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	r.upstreamTime.WithLabelValues(endpoint).Observe(seconds)
}

func (r *Recorder) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordFloorPrice records the last floor price for a collection.
func (r *Recorder) RecordFloorPrice(collection string, price float64) {
	r.floorPrice.WithLabelValues(collection).Set(price)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards everything.
type Nop struct{}

var _ repository.Metrics = Nop{}

func (Nop) RecordForecast(string, bool, float64) {}
func (Nop) RecordUpstream(string, int, float64)  {}
func (Nop) RecordCache(bool)                     {}
func (Nop) RecordFloorPrice(string, float64)     {}
func (Nop) RecordError(string)                   {}
func (Nop) RecordLatency(string, float64)        {}
