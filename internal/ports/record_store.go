package ports

import (
	"context"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// RecordStore holds the flat F10-02 table of one session. Rows are only
// appended or replaced wholesale; All returns a copy in insertion order.
type RecordStore interface {
	Append(ctx context.Context, rows []domain.FlatRow) error
	All(ctx context.Context) ([]domain.FlatRow, error)
	Replace(ctx context.Context, rows []domain.FlatRow) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Close() error
}
