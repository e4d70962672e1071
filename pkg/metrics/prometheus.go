package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	overlayFetches *prometheus.CounterVec
	overlaySamples *prometheus.GaugeVec
	seriesPoints   prometheus.Gauge
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered with reg. A nil reg uses the
// default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		overlayFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_overlay_fetches_total",
				Help: "Live overlay fetches by asset and outcome",
			},
			[]string{"asset", "outcome"},
		),
		overlaySamples: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropulse_overlay_samples",
				Help: "Days covered by the live overlay in the current snapshot",
			},
			[]string{"field"},
		),
		seriesPoints: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "macropulse_series_points",
				Help: "Daily points in the current snapshot",
			},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macropulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordOverlayFetch counts one overlay fetch. outcome is e.g. "ok", "cached", "error", "empty".
func (r *Recorder) RecordOverlayFetch(asset, outcome string) {
	r.overlayFetches.WithLabelValues(asset, outcome).Inc()
}

// RecordOverlaySamples sets how many days the live overlay of field covers.
func (r *Recorder) RecordOverlaySamples(field string, n int) {
	r.overlaySamples.WithLabelValues(field).Set(float64(n))
}

// RecordSeriesPoints sets the size of the published snapshot.
func (r *Recorder) RecordSeriesPoints(n int) {
	r.seriesPoints.Set(float64(n))
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

func (Nop) RecordOverlayFetch(string, string) {}
func (Nop) RecordOverlaySamples(string, int) {}
func (Nop) RecordSeriesPoints(int) {}
func (Nop) RecordError(string) {}
func (Nop) RecordLatency(string, float64) {}
