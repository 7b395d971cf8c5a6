package ports

import "context"

// MetricsExporter records usage of the register and report workflows.
type MetricsExporter interface {
	// TrialAdded records a trial submission and the number of rows it produced.
	TrialAdded(ctx context.Context, requestType string, rows int)
	// TableImported records a bulk import replacing a session table.
	TableImported(ctx context.Context, rows int)
	// ReportExported records an issued report of the given format ("csv", "xlsx", "table").
	ReportExported(ctx context.Context, format string, requests int)
	// Close flushes pending metrics.
	Close(ctx context.Context) error
}
