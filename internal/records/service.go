package records

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/ports"
	"github.com/ivnamo/isoVisor/internal/recipe"
	"github.com/ivnamo/isoVisor/internal/tabular"
)

// Service applies the table mutations: trial submissions, bulk imports and
// clears.
type Service struct {
	metrics ports.MetricsExporter
	logger  *zap.Logger
}

func NewService(metrics ports.MetricsExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{metrics: metrics, logger: logger}
}

// AddTrial parses the recipe, builds the rows and appends them to store.
// Validation failures are returned as the package's sentinel errors and leave
// the store unchanged. It returns the number of rows added.
func (s *Service) AddTrial(ctx context.Context, store ports.RecordStore, sub Submission) (int, error) {
	if err := sub.Validate(); err != nil {
		return 0, err
	}

	rows, err := Build(sub, recipe.Parse(sub.RecipeText))
	if err != nil {
		return 0, err
	}

	if err := store.Append(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to append trial rows: %w", err)
	}

	s.logger.Info("trial added",
		zap.String("request_id", rows[0].RequestID),
		zap.String("trial_id", rows[0].TrialID),
		zap.Int("rows", len(rows)))
	if s.metrics != nil {
		s.metrics.TrialAdded(ctx, string(rows[0].RequestType), len(rows))
	}
	return len(rows), nil
}

// ImportTable reads a delimited table from r and replaces the contents of
// store with it. A file that cannot be read leaves store untouched.
func (s *Service) ImportTable(ctx context.Context, store ports.RecordStore, r io.Reader) (int, error) {
	rows, err := tabular.Import(r)
	if err != nil {
		return 0, fmt.Errorf("failed to import table: %w", err)
	}
	if err := store.Replace(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to replace table: %w", err)
	}

	s.logger.Info("table imported", zap.Int("rows", len(rows)))
	if s.metrics != nil {
		s.metrics.TableImported(ctx, len(rows))
	}
	return len(rows), nil
}

// Clear wipes the whole table of store.
func (s *Service) Clear(ctx context.Context, store ports.RecordStore) error {
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear table: %w", err)
	}
	s.logger.Info("table cleared")
	return nil
}
