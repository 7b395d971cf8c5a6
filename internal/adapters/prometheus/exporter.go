// Package prometheus exposes the workflow counters on a Prometheus scrape endpoint.
package prometheus

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "isovisor"

// Exporter counts workflow events into its own registry.
type Exporter struct {
	registry       *prometheus.Registry
	trialsTotal    *prometheus.CounterVec
	rowsTotal      *prometheus.CounterVec
	importsTotal   prometheus.Counter
	importedRows   prometheus.Histogram
	reportsTotal   *prometheus.CounterVec
	reportRequests *prometheus.HistogramVec
}

// NewExporter registers the counters plus the Go runtime and process
// collectors on a fresh registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		trialsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_added_total",
			Help:      "Trial submissions appended to a session table.",
		}, []string{"request_type"}),
		rowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_added_total",
			Help:      "Flat rows produced by trial submissions.",
		}, []string{"request_type"}),
		importsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tables_imported_total",
			Help:      "Tables imported from delimited files.",
		}),
		importedRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "imported_rows",
			Help:      "Rows per imported table.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_exported_total",
			Help:      "Reports and table dumps downloaded.",
		}, []string{"format"}),
		reportRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_requests",
			Help:      "Requests covered by one export.",
			Buckets:   prometheus.LinearBuckets(1, 5, 6),
		}, []string{"format"}),
	}
	e.registry.MustRegister(
		e.trialsTotal,
		e.rowsTotal,
		e.importsTotal,
		e.importedRows,
		e.reportsTotal,
		e.reportRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return e
}

func (e *Exporter) TrialAdded(ctx context.Context, requestType string, rows int) {
	e.trialsTotal.WithLabelValues(requestType).Inc()
	e.rowsTotal.WithLabelValues(requestType).Add(float64(rows))
}

func (e *Exporter) TableImported(ctx context.Context, rows int) {
	e.importsTotal.Inc()
	e.importedRows.Observe(float64(rows))
}

func (e *Exporter) ReportExported(ctx context.Context, format string, requests int) {
	e.reportsTotal.WithLabelValues(format).Inc()
	e.reportRequests.WithLabelValues(format).Observe(float64(requests))
}

func (e *Exporter) Close(ctx context.Context) error {
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{Registry: e.registry})
}
