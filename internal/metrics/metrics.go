// Package metrics exposes Prometheus instruments for the service layer and HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	UseCaseDuration     *prometheus.HistogramVec
	HTTPRequestDuration *prometheus.HistogramVec
	ReportsSubmitted    *prometheus.CounterVec
	ProjectsCompleted   prometheus.Counter
	ReportCacheLookups  *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
}

// New registers every instrument on a fresh registry, so several instances
// can coexist in tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		UseCaseDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cadence_use_case_duration_seconds",
				Help:    "Service use case duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"use_case", "success"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cadence_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "path", "status"},
		),
		ReportsSubmitted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadence_reports_submitted_total",
				Help: "Weekly reports saved, by outcome",
			},
			[]string{"outcome"}, // created, updated
		),
		ProjectsCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "cadence_projects_completed_total",
			Help: "Projects marked completed on report submission",
		}),
		ReportCacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadence_report_cache_lookups_total",
				Help: "General report cache lookups, by result",
			},
			[]string{"result"}, // hit, miss, error
		),
		EventsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadence_events_published_total",
				Help: "Domain events published, by routing key and status",
			},
			[]string{"routing_key", "status"},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordUseCase(name string, success bool, d time.Duration) {
	m.UseCaseDuration.WithLabelValues(name, boolLabel(success)).Observe(d.Seconds())
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, d time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

func (m *Metrics) IncReportSubmitted(created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	m.ReportsSubmitted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncProjectCompleted() {
	m.ProjectsCompleted.Inc()
}

func (m *Metrics) IncCacheLookup(result string) {
	m.ReportCacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncEventPublished(routingKey string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.EventsPublished.WithLabelValues(routingKey, status).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
