package ports

import (
	"context"
	"time"
)

// ReportArchive keeps a copy of every issued report.
type ReportArchive interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (ArchivedReport, error)
	List(ctx context.Context) ([]ArchivedReport, error)
}

// ArchivedReport describes a stored report copy.
type ArchivedReport struct {
	Key         string
	Name        string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}
