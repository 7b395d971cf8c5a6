package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ivnamo/isoVisor/internal/adapters/memory"
	"github.com/ivnamo/isoVisor/internal/exports"
	"github.com/ivnamo/isoVisor/internal/tabular"
)

// openTable loads the table file at path into a fresh store. A missing or
// zero-byte file gives an empty store when allowMissing is set. It is not
// counted as a table import.
func openTable(ctx context.Context, path string, allowMissing bool) (*memory.Store, error) {
	store := memory.NewStore()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && allowMissing {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	if allowMissing {
		if fi, err := f.Stat(); err == nil && fi.Size() == 0 {
			return store, nil
		}
	}
	rows, err := tabular.Import(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := store.Replace(ctx, rows); err != nil {
		return nil, err
	}
	return store, nil
}

// saveTable writes the store to path through a temporary file in the same
// directory so a failed write never truncates the table. The permissions of
// an existing table are kept; new tables get 0644.
func saveTable(ctx context.Context, store *memory.Store, path string) error {
	rows, err := store.All(ctx)
	if err != nil {
		return err
	}
	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".isovisor-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temporary table: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set table permissions: %w", err)
	}
	if err := tabular.Export(tmp, rows); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace table: %w", err)
	}
	return nil
}

// writeFile stores a rendered download. An empty out uses the file's own name
// and "-" writes to stdout.
func writeFile(stdout io.Writer, f exports.File, out string) (string, error) {
	switch out {
	case "-":
		_, err := stdout.Write(f.Data)
		return "stdout", err
	case "":
		out = f.Name
	}
	if err := os.WriteFile(out, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}
