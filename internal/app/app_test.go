package app

import (
	"context"
	"errors"
	"testing"

	archivefs "github.com/ivnamo/isoVisor/internal/adapters/archive/fs"
	archivememory "github.com/ivnamo/isoVisor/internal/adapters/archive/memory"
	"github.com/ivnamo/isoVisor/internal/adapters/libsql"
	"github.com/ivnamo/isoVisor/internal/adapters/memory"
	"github.com/ivnamo/isoVisor/internal/config"
	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/report"
)

type countingExporter struct {
	trials, imports, reports int
	closeErr                 error
}

func (c *countingExporter) TrialAdded(context.Context, string, int)     { c.trials++ }
func (c *countingExporter) TableImported(context.Context, int)          { c.imports++ }
func (c *countingExporter) ReportExported(context.Context, string, int) { c.reports++ }
func (c *countingExporter) Close(context.Context) error                 { return c.closeErr }

func TestFanout(t *testing.T) {
	ctx := context.Background()
	a, b := &countingExporter{}, &countingExporter{closeErr: errors.New("flush failed")}
	f := Fanout{a, b}

	f.TrialAdded(ctx, "Client", 3)
	f.TableImported(ctx, 10)
	f.ReportExported(ctx, "csv", 1)
	f.ReportExported(ctx, "xlsx", 2)

	for i, c := range []*countingExporter{a, b} {
		if c.trials != 1 || c.imports != 1 || c.reports != 2 {
			t.Errorf("exporter %d got %+v", i, c)
		}
	}
	if err := f.Close(ctx); err == nil {
		t.Error("expected the close error to be reported")
	}
}

func TestNewArchive(t *testing.T) {
	ctx := context.Background()

	a, err := NewArchive(ctx, config.Archive{Driver: config.ArchiveNone})
	if err != nil || a != nil {
		t.Errorf("none driver = %v, %v; want nil archive", a, err)
	}

	a, err = NewArchive(ctx, config.Archive{Driver: config.ArchiveMemory})
	if _, ok := a.(*archivememory.Store); err != nil || !ok {
		t.Errorf("memory driver = %T, %v", a, err)
	}

	a, err = NewArchive(ctx, config.Archive{Driver: config.ArchiveFS, Dir: t.TempDir()})
	if _, ok := a.(*archivefs.Store); err != nil || !ok {
		t.Errorf("fs driver = %T, %v", a, err)
	}
}

func TestStoreFactory(t *testing.T) {
	ctx := context.Background()

	s, err := StoreFactory(config.StoreMemory)(ctx)
	if _, ok := s.(*memory.Store); err != nil || !ok {
		t.Fatalf("memory factory = %T, %v", s, err)
	}

	s, err = StoreFactory(config.StoreLibSQL)(ctx)
	if err != nil {
		t.Fatalf("libsql factory failed: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*libsql.Store); !ok {
		t.Fatalf("libsql factory = %T", s)
	}
	if err := s.Append(ctx, []domain.FlatRow{{TrialID: "E-1"}}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Each session gets its own table.
	other, err := StoreFactory(config.StoreLibSQL)(ctx)
	if err != nil {
		t.Fatalf("second libsql store failed: %v", err)
	}
	defer other.Close()
	if n, _ := other.Count(ctx); n != 0 {
		t.Errorf("sessions share a libsql table: %d rows", n)
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StoreDriver: config.StoreMemory,
		CSVEncoding: "latin1",
		Archive:     config.Archive{Driver: config.ArchiveMemory},
	}
	a, err := New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close(ctx)

	if a.Encoding != report.EncodingLatin1 {
		t.Errorf("encoding = %q", a.Encoding)
	}
	if a.Archive == nil || a.Records == nil || a.Exports == nil {
		t.Errorf("incomplete app: %+v", a)
	}

	cfg.CSVEncoding = "ebcdic"
	if _, err := New(ctx, cfg, nil); !errors.Is(err, report.ErrUnknownEncoding) {
		t.Errorf("expected ErrUnknownEncoding, got %v", err)
	}
}
