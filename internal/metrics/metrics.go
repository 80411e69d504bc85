// Package metrics exposes Prometheus counters for the string store and its
// query paths. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stranalyzer"

// Query kinds used as label values.
const (
	KindFilter          = "filter"
	KindNaturalLanguage = "natural_language"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	created     prometheus.Counter
	deleted     prometheus.Counter
	duplicates  prometheus.Counter
	queries     *prometheus.CounterVec
	queryErrors *prometheus.CounterVec
	resultSize  *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strings_created_total",
			Help:      "Strings stored.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strings_deleted_total",
			Help:      "Strings deleted.",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_total",
			Help:      "Create requests rejected because the string already exists.",
		}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Successful queries by kind.",
		}, []string{"kind"}),
		queryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_errors_total",
			Help:      "Rejected queries by kind and reason.",
		}, []string{"kind", "reason"}),
		resultSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_result_size",
			Help:      "Number of strings returned per query.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		m.created,
		m.deleted,
		m.duplicates,
		m.queries,
		m.queryErrors,
		m.resultSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) StringCreated() {
	if m != nil {
		m.created.Inc()
	}
}

func (m *Metrics) StringDeleted() {
	if m != nil {
		m.deleted.Inc()
	}
}

func (m *Metrics) Duplicate() {
	if m != nil {
		m.duplicates.Inc()
	}
}

// Query records a successful query of the given kind returning n strings.
func (m *Metrics) Query(kind string, n int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(kind).Inc()
	m.resultSize.WithLabelValues(kind).Observe(float64(n))
}

// QueryError records a rejected query.
func (m *Metrics) QueryError(kind, reason string) {
	if m != nil {
		m.queryErrors.WithLabelValues(kind, reason).Inc()
	}
}
