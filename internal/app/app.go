// Package app wires the configured adapters into the services shared by the
// web server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	archivefs "github.com/ivnamo/isoVisor/internal/adapters/archive/fs"
	archivememory "github.com/ivnamo/isoVisor/internal/adapters/archive/memory"
	archives3 "github.com/ivnamo/isoVisor/internal/adapters/archive/s3"
	"github.com/ivnamo/isoVisor/internal/adapters/libsql"
	"github.com/ivnamo/isoVisor/internal/adapters/memory"
	"github.com/ivnamo/isoVisor/internal/adapters/otel"
	"github.com/ivnamo/isoVisor/internal/adapters/prometheus"
	"github.com/ivnamo/isoVisor/internal/config"
	"github.com/ivnamo/isoVisor/internal/exports"
	"github.com/ivnamo/isoVisor/internal/ports"
	"github.com/ivnamo/isoVisor/internal/records"
	"github.com/ivnamo/isoVisor/internal/report"
	"github.com/ivnamo/isoVisor/internal/session"
	"github.com/ivnamo/isoVisor/internal/web"
)

// sweepInterval is how often idle sessions are checked for expiry.
const sweepInterval = time.Minute

// App holds the shared dependencies of the commands.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Encoding   report.Encoding
	Prometheus *prometheus.Exporter
	Metrics    ports.MetricsExporter
	Archive    ports.ReportArchive
	Records    *records.Service
	Exports    *exports.Service
}

// New builds the metrics exporters, the report archive and the services.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	enc, err := report.ParseEncoding(cfg.CSVEncoding)
	if err != nil {
		return nil, fmt.Errorf("invalid %s_CSV_ENCODING: %w", config.Prefix, err)
	}

	prom := prometheus.NewExporter()
	metrics := Fanout{prom, newOTel(ctx, cfg.OTel, logger)}

	archive, err := NewArchive(ctx, cfg.Archive)
	if err != nil {
		_ = metrics.Close(ctx)
		return nil, err
	}
	if archive != nil {
		logger.Info("report archive enabled", zap.String("driver", cfg.Archive.Driver))
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Encoding:   enc,
		Prometheus: prom,
		Metrics:    metrics,
		Archive:    archive,
		Records:    records.NewService(metrics, logger.Named("records")),
		Exports:    exports.NewService(archive, metrics, logger.Named("exports")),
	}, nil
}

func newOTel(ctx context.Context, cfg config.OTel, logger *zap.Logger) ports.MetricsExporter {
	exp, err := otel.NewExporter(ctx, otel.Config{Endpoint: cfg.Endpoint, Enabled: cfg.Enabled, Insecure: cfg.Insecure})
	switch {
	case errors.Is(err, otel.ErrDisabled):
		return otel.NewNoOpExporter()
	case err != nil:
		logger.Warn("OTEL exporter unavailable, continuing without it", zap.Error(err))
		return otel.NewNoOpExporter()
	}
	logger.Info("OTEL metrics enabled", zap.String("endpoint", cfg.Endpoint))
	return exp
}

// NewArchive opens the configured report archive. The none driver returns a
// nil archive.
func NewArchive(ctx context.Context, cfg config.Archive) (ports.ReportArchive, error) {
	switch cfg.Driver {
	case config.ArchiveFS:
		s, err := archivefs.NewStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open report archive: %w", err)
		}
		return s, nil
	case config.ArchiveMemory:
		return archivememory.NewStore(), nil
	case config.ArchiveS3:
		s, err := archives3.New(ctx, archives3.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open report archive: %w", err)
		}
		return s, nil
	}
	return nil, nil
}

// StoreFactory opens one empty table per browser session on the configured
// driver.
func StoreFactory(driver string) session.StoreFactory {
	if driver == config.StoreLibSQL {
		return func(ctx context.Context) (ports.RecordStore, error) {
			return libsql.NewStore(ctx, libsql.DefaultDSN)
		}
	}
	return func(context.Context) (ports.RecordStore, error) {
		return memory.NewStore(), nil
	}
}

// Serve runs the web server until ctx is cancelled.
func (a *App) Serve(ctx context.Context, port int) error {
	sessions := session.NewRegistry(StoreFactory(a.Config.StoreDriver), a.Config.SessionTTL, a.Logger.Named("session"))
	defer func() {
		if err := sessions.Close(); err != nil {
			a.Logger.Warn("closing session tables", zap.Error(err))
		}
	}()
	go sessions.Run(ctx, sweepInterval)

	server := web.NewServer(web.Options{
		Port:            port,
		Encoding:        a.Encoding,
		ShutdownTimeout: a.Config.ShutdownTimeout,
		Metrics:         a.Prometheus.Handler(),
	}, sessions, a.Records, a.Exports, a.Logger.Named("http"))
	return server.Start(ctx)
}

// Close flushes the metrics exporters.
func (a *App) Close(ctx context.Context) error {
	return a.Metrics.Close(ctx)
}
