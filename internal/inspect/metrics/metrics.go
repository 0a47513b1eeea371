package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the inspection pipelines.
type Metrics struct {
	DocumentsIndexed  prometheus.Counter
	ParseFailures     prometheus.Counter
	Findings          *prometheus.CounterVec
	EntriesNormalized *prometheus.CounterVec
	Queries           *prometheus.CounterVec
	PipelineLatency   *prometheus.HistogramVec
	ActiveSessions    prometheus.Gauge
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the inspection metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DocumentsIndexed: factory.NewCounter(prometheus.CounterOpts{
			Name: "btv_inspect_documents_indexed_total",
			Help: "Total XML documents parsed and indexed",
		}),
		ParseFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "btv_inspect_parse_failures_total",
			Help: "Total XML documents rejected by the parser",
		}),
		Findings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "btv_inspect_validation_findings_total",
			Help: "Total validation findings by message",
		}, []string{"message"}),
		EntriesNormalized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "btv_inspect_entries_normalized_total",
			Help: "Total deny-list entries normalized by payload shape",
		}, []string{"shape"}),
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "btv_inspect_queries_total",
			Help: "Total read queries by kind",
		}, []string{"kind"}), // kind: "search", "details", "entries", "lookup", "reasons", "export"
		PipelineLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "btv_inspect_pipeline_duration_seconds",
			Help:    "Duration of inspection pipelines",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"pipeline"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "btv_inspect_active_sessions",
			Help: "Sessions created minus sessions deleted",
		}),
	}
}

// IncrementDocumentsIndexed records a successfully indexed document.
func (m *Metrics) IncrementDocumentsIndexed() {
	if m != nil {
		m.DocumentsIndexed.Inc()
	}
}

// IncrementParseFailures records a rejected document.
func (m *Metrics) IncrementParseFailures() {
	if m != nil {
		m.ParseFailures.Inc()
	}
}

// AddFindings records n findings carrying message.
func (m *Metrics) AddFindings(message string, n int) {
	if m != nil && n > 0 {
		m.Findings.WithLabelValues(message).Add(float64(n))
	}
}

// AddEntriesNormalized records n entries produced from a payload of shape.
func (m *Metrics) AddEntriesNormalized(shape string, n int) {
	if m != nil {
		m.EntriesNormalized.WithLabelValues(shape).Add(float64(n))
	}
}

// IncrementQuery records a read query.
func (m *Metrics) IncrementQuery(kind string) {
	if m != nil {
		m.Queries.WithLabelValues(kind).Inc()
	}
}

// ObservePipelineLatency records the duration of a pipeline run.
func (m *Metrics) ObservePipelineLatency(pipeline string, d time.Duration) {
	if m != nil {
		m.PipelineLatency.WithLabelValues(pipeline).Observe(d.Seconds())
	}
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.ActiveSessions.Inc()
	}
}

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() {
	if m != nil {
		m.ActiveSessions.Dec()
	}
}
