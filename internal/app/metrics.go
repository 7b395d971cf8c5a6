package app

import (
	"context"
	"errors"

	"github.com/ivnamo/isoVisor/internal/ports"
)

// Fanout forwards every metric to each exporter.
type Fanout []ports.MetricsExporter

func (f Fanout) TrialAdded(ctx context.Context, requestType string, rows int) {
	for _, e := range f {
		e.TrialAdded(ctx, requestType, rows)
	}
}

func (f Fanout) TableImported(ctx context.Context, rows int) {
	for _, e := range f {
		e.TableImported(ctx, rows)
	}
}

func (f Fanout) ReportExported(ctx context.Context, format string, requests int) {
	for _, e := range f {
		e.ReportExported(ctx, format, requests)
	}
}

func (f Fanout) Close(ctx context.Context) error {
	var errs []error
	for _, e := range f {
		if err := e.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
