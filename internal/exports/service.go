// Package exports produces the downloadable files of a session table and
// keeps a copy of each in the report archive.
package exports

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/ports"
	"github.com/ivnamo/isoVisor/internal/report"
	"github.com/ivnamo/isoVisor/internal/tabular"
	"github.com/ivnamo/isoVisor/internal/trials"
)

// Export formats, as reported to metrics.
const (
	FormatCSV      = "csv"
	FormatWorkbook = "xlsx"
	FormatTable    = "table"
)

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Service struct {
	archive ports.ReportArchive
	metrics ports.MetricsExporter
	logger  *zap.Logger
}

// NewService builds the export service. archive and metrics may be nil.
func NewService(archive ports.ReportArchive, metrics ports.MetricsExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{archive: archive, metrics: metrics, logger: logger}
}

// RequestReport renders the delimited report of one request.
func (s *Service) RequestReport(ctx context.Context, store ports.RecordStore, requestID string, enc report.Encoding) (File, error) {
	rows, err := store.All(ctx)
	if err != nil {
		return File{}, fmt.Errorf("failed to read table: %w", err)
	}
	lines, err := report.ForRequest(rows, requestID)
	if err != nil {
		return File{}, err
	}
	data, err := report.RenderCSV(lines, enc)
	if err != nil {
		return File{}, err
	}
	f := File{
		Name:        report.CSVFilename(requestID),
		ContentType: report.ContentTypeCSV + "; charset=" + enc.Charset(),
		Data:        data,
	}
	s.issued(ctx, f, FormatCSV, 1)
	return f, nil
}

// Workbook renders every request of the table into one XLSX file.
func (s *Service) Workbook(ctx context.Context, store ports.RecordStore) (File, error) {
	rows, err := store.All(ctx)
	if err != nil {
		return File{}, fmt.Errorf("failed to read table: %w", err)
	}
	data, err := report.BuildWorkbook(rows)
	if err != nil {
		return File{}, err
	}
	f := File{
		Name:        report.WorkbookFilename,
		ContentType: report.ContentTypeWorkbook,
		Data:        data,
	}
	s.issued(ctx, f, FormatWorkbook, len(trials.Requests(rows)))
	return f, nil
}

// Table dumps the whole flat table. An empty or unsafe filename falls back to
// tabular.DefaultFilename.
func (s *Service) Table(ctx context.Context, store ports.RecordStore, filename string) (File, error) {
	rows, err := store.All(ctx)
	if err != nil {
		return File{}, fmt.Errorf("failed to read table: %w", err)
	}
	var buf bytes.Buffer
	if err := tabular.Export(&buf, rows); err != nil {
		return File{}, err
	}
	f := File{
		Name:        TableFilename(filename),
		ContentType: report.ContentTypeCSV + "; charset=utf-8",
		Data:        buf.Bytes(),
	}
	s.issued(ctx, f, FormatTable, len(trials.Requests(rows)))
	return f, nil
}

// TableFilename cleans a user chosen dump name and makes sure it ends in .csv.
func TableFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.NewReplacer(`"`, "", `\`, "", "/", "").Replace(name)
	if name == "" || name == "." || name == ".." {
		return tabular.DefaultFilename
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		name += ".csv"
	}
	return name
}

func (s *Service) issued(ctx context.Context, f File, format string, requests int) {
	s.logger.Info("report issued",
		zap.String("format", format),
		zap.String("file", f.Name),
		zap.Int("bytes", len(f.Data)),
		zap.Int("requests", requests))
	if s.metrics != nil {
		s.metrics.ReportExported(ctx, format, requests)
	}
	if s.archive == nil {
		return
	}
	archived, err := s.archive.Put(ctx, f.Name, f.Data, f.ContentType)
	if err != nil {
		s.logger.Warn("archiving report failed", zap.String("file", f.Name), zap.Error(err))
		return
	}
	s.logger.Debug("report archived", zap.String("key", archived.Key))
}
