package otel

import "context"

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) TrialAdded(ctx context.Context, requestType string, rows int) {}

func (e *NoOpExporter) TableImported(ctx context.Context, rows int) {}

func (e *NoOpExporter) ReportExported(ctx context.Context, format string, requests int) {}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
