package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"lpec/internal/structures"
)

type MetricsProviderInterface interface {
	IncEventsEmitted(n int)
	IncFetchErrors()
	IncQueryRejections()
	IncCheckpointWrites()
	IncDedupSkipped()
	ObserveFetchDuration(duration time.Duration)
	ObserveWindowsPlanned(n int)
	SetLastRunTime(t time.Time)
}

type MetricsProvider struct {
	eventsEmitted    prometheus.Counter
	fetchErrors      prometheus.Counter
	queryRejections  prometheus.Counter
	checkpointWrites prometheus.Counter
	dedupSkipped     prometheus.Counter
	fetchDuration    prometheus.Histogram
	windowsPlanned   prometheus.Histogram
	lastRunTime      prometheus.Gauge
}

func (m *MetricsProvider) IncEventsEmitted(n int) {
	m.eventsEmitted.Add(float64(n))
}

func (m *MetricsProvider) IncFetchErrors() {
	m.fetchErrors.Inc()
}

func (m *MetricsProvider) IncQueryRejections() {
	m.queryRejections.Inc()
}

func (m *MetricsProvider) IncCheckpointWrites() {
	m.checkpointWrites.Inc()
}

func (m *MetricsProvider) IncDedupSkipped() {
	m.dedupSkipped.Inc()
}

func (m *MetricsProvider) ObserveFetchDuration(duration time.Duration) {
	m.fetchDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveWindowsPlanned(n int) {
	m.windowsPlanned.Observe(float64(n))
}

func (m *MetricsProvider) SetLastRunTime(t time.Time) {
	m.lastRunTime.Set(float64(t.Unix()))
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		eventsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lpec_events_emitted_total",
			Help: "Total number of activity events handed to the sink",
		}),
		fetchErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lpec_fetch_errors_total",
			Help: "Total number of transport or authorization failures",
		}),
		queryRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lpec_query_rejections_total",
			Help: "Total number of fatal non-OK reporting responses",
		}),
		checkpointWrites: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lpec_checkpoint_writes_total",
			Help: "Total number of checkpoint persistence writes",
		}),
		dedupSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lpec_dedup_skipped_total",
			Help: "Total number of events skipped by the dedup cache",
		}),
		fetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lpec_fetch_duration_seconds",
			Help:    "Reporting API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		windowsPlanned: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lpec_windows_planned",
			Help:    "Number of query windows planned per collection run",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
		lastRunTime: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lpec_last_run_timestamp_seconds",
			Help: "Unix time of the last completed collection run",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncEventsEmitted(_ int)                 {}
func (n *noopMetrics) IncFetchErrors()                        {}
func (n *noopMetrics) IncQueryRejections()                    {}
func (n *noopMetrics) IncCheckpointWrites()                   {}
func (n *noopMetrics) IncDedupSkipped()                       {}
func (n *noopMetrics) ObserveFetchDuration(_ time.Duration)   {}
func (n *noopMetrics) ObserveWindowsPlanned(_ int)            {}
func (n *noopMetrics) SetLastRunTime(_ time.Time)             {}
