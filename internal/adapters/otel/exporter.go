package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "isovisor"
	serviceVersion = "1.0.0"
)

// ErrDisabled is returned by NewExporter when the configuration turns it off.
var ErrDisabled = errors.New("OTEL exporter is disabled or endpoint not configured")

// Exporter pushes workflow counters to an OTEL Collector.
type Exporter struct {
	provider       *sdkmetric.MeterProvider
	trialsTotal    metric.Int64Counter
	rowsTotal      metric.Int64Counter
	importsTotal   metric.Int64Counter
	importedRows   metric.Int64Histogram
	reportsTotal   metric.Int64Counter
	reportRequests metric.Int64Histogram
}

// NewExporter creates an exporter sending to the OTLP gRPC endpoint of cfg.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Active() {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)
	e := &Exporter{provider: provider}

	var err error
	if e.trialsTotal, err = meter.Int64Counter(
		"isovisor_trials_added_total",
		metric.WithDescription("Trial submissions appended to a session table"),
		metric.WithUnit("{trial}"),
	); err != nil {
		return nil, fmt.Errorf("creating trials counter: %w", err)
	}

	if e.rowsTotal, err = meter.Int64Counter(
		"isovisor_rows_added_total",
		metric.WithDescription("Flat rows produced by trial submissions"),
		metric.WithUnit("{row}"),
	); err != nil {
		return nil, fmt.Errorf("creating rows counter: %w", err)
	}

	if e.importsTotal, err = meter.Int64Counter(
		"isovisor_tables_imported_total",
		metric.WithDescription("Tables imported from delimited files"),
		metric.WithUnit("{table}"),
	); err != nil {
		return nil, fmt.Errorf("creating imports counter: %w", err)
	}

	if e.importedRows, err = meter.Int64Histogram(
		"isovisor_imported_rows",
		metric.WithDescription("Rows per imported table"),
		metric.WithUnit("{row}"),
	); err != nil {
		return nil, fmt.Errorf("creating imported rows histogram: %w", err)
	}

	if e.reportsTotal, err = meter.Int64Counter(
		"isovisor_reports_exported_total",
		metric.WithDescription("Reports and table dumps downloaded"),
		metric.WithUnit("{report}"),
	); err != nil {
		return nil, fmt.Errorf("creating reports counter: %w", err)
	}

	if e.reportRequests, err = meter.Int64Histogram(
		"isovisor_report_requests",
		metric.WithDescription("Requests covered by one export"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("creating report requests histogram: %w", err)
	}

	return e, nil
}

func (e *Exporter) TrialAdded(ctx context.Context, requestType string, rows int) {
	opt := metric.WithAttributes(attribute.String("request_type", requestType))
	e.trialsTotal.Add(ctx, 1, opt)
	e.rowsTotal.Add(ctx, int64(rows), opt)
}

func (e *Exporter) TableImported(ctx context.Context, rows int) {
	e.importsTotal.Add(ctx, 1)
	e.importedRows.Record(ctx, int64(rows))
}

func (e *Exporter) ReportExported(ctx context.Context, format string, requests int) {
	opt := metric.WithAttributes(attribute.String("format", format))
	e.reportsTotal.Add(ctx, 1, opt)
	e.reportRequests.Record(ctx, int64(requests), opt)
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
