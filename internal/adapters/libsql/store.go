// Package libsql implements the session record store on an embedded libSQL
// database. Each store owns its own in-memory database unless a file DSN is given.
package libsql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// DefaultDSN opens a private in-memory database.
const DefaultDSN = "file::memory:"

// sqlColumns mirrors domain.Columns.
var sqlColumns = []string{
	"responsible",
	"request_id",
	"request_type",
	"base_product",
	"design_description",
	"trial_id",
	"formulation_name",
	"trial_date",
	"result",
	"raw_material",
	"weight_pct",
	"comment",
	"final_product",
	"formula_ok_ref",
	"declared_strengths",
	"spec_description",
	"spec_appearance",
	"spec_color",
	"spec_density",
	"spec_ph",
	"spec_chemistry",
	"validation_payload",
	"validation_date",
}

type Store struct {
	db *sql.DB
}

// NewStore opens dsn and prepares the flat_rows table.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s, err := NewStoreFromDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStoreFromDB uses an already opened database.
func NewStoreFromDB(ctx context.Context, db *sql.DB) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	defs := make([]string, len(sqlColumns))
	for i, c := range sqlColumns {
		defs[i] = c + " TEXT NOT NULL DEFAULT ''"
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS flat_rows (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		%s
	)`, strings.Join(defs, ",\n\t\t"))
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("failed to create flat_rows table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Append(ctx context.Context, rows []domain.FlatRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRows(ctx, tx, rows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}
	return nil
}

func (s *Store) All(ctx context.Context) ([]domain.FlatRow, error) {
	query := fmt.Sprintf("SELECT %s FROM flat_rows ORDER BY seq", strings.Join(sqlColumns, ", "))
	rs, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}
	defer func() { _ = rs.Close() }()

	out := make([]domain.FlatRow, 0)
	values := make([]string, len(sqlColumns))
	dest := make([]any, len(sqlColumns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rs.Next() {
		if err := rs.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var row domain.FlatRow
		for i, c := range domain.Columns {
			row.SetField(c, values[i])
		}
		out = append(out, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

func (s *Store) Replace(ctx context.Context, rows []domain.FlatRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM flat_rows"); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}
	if err := insertRows(ctx, tx, rows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM flat_rows"); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM flat_rows").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func insertRows(ctx context.Context, tx *sql.Tx, rows []domain.FlatRow) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(sqlColumns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO flat_rows (%s) VALUES (%s)",
		strings.Join(sqlColumns, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, len(sqlColumns))
	for _, row := range rows {
		for i, v := range row.Values() {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}
	return nil
}
