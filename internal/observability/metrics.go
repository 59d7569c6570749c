package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the scrape pipeline and the
// API surface.
type Metrics struct {
	FetchesTotal  prometheus.Counter
	FetchErrors   *prometheus.CounterVec // labels: type={network,rate_limit,parsing,unknown}
	FetchDuration prometheus.Histogram

	ResortsParsed prometheus.Gauge
	MergesTotal   prometheus.Counter
	MergeErrors   prometheus.Counter

	ExportsTotal *prometheus.CounterVec // labels: format={csv,xlsx}
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchesTotal,
		m.FetchErrors,
		m.FetchDuration,
		m.ResortsParsed,
		m.MergesTotal,
		m.MergeErrors,
		m.ExportsTotal,
		m.CacheLookups,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so parallel
// tests don't trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hakuba_dash",
			Name:      "fetches_total",
			Help:      "Completed scrapes of the resort info page.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hakuba_dash",
			Name:      "fetch_errors_total",
			Help:      "Scrape failures by classified error type.",
		}, []string{"type"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hakuba_dash",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a full fetch-and-parse cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ResortsParsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hakuba_dash",
			Name:      "resorts_parsed",
			Help:      "Rows in the most recent snapshot.",
		}),
		MergesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hakuba_dash",
			Name:      "merges_total",
			Help:      "Successful resort merges served.",
		}),
		MergeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hakuba_dash",
			Name:      "merge_errors_total",
			Help:      "Merge attempts that fell back to the unmerged table.",
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hakuba_dash",
			Name:      "exports_total",
			Help:      "Export downloads by format.",
		}, []string{"format"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hakuba_dash",
			Name:      "cache_lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
	}
}
