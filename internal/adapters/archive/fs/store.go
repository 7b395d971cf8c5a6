// Package fs archives issued reports on the local filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ivnamo/isoVisor/internal/adapters/archive"
	"github.com/ivnamo/isoVisor/internal/ports"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

// NewStore creates the archive directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, errors.New("archive directory required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &Store{baseDir: baseDir, now: time.Now}, nil
}

func (s *Store) Put(ctx context.Context, name string, data []byte, contentType string) (ports.ArchivedReport, error) {
	key := archive.NewKey(s.now(), name)
	path := s.getPath(key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ports.ArchivedReport{}, fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ports.ArchivedReport{}, fmt.Errorf("failed to write archived report: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return ports.ArchivedReport{}, fmt.Errorf("failed to stat archived report: %w", err)
	}
	if contentType == "" {
		contentType = archive.ContentType(name)
	}
	return ports.ArchivedReport{
		Key:         key,
		Name:        archive.NameFromKey(key),
		ContentType: contentType,
		Size:        info.Size(),
		CreatedAt:   info.ModTime(),
	}, nil
}

// List returns the archived reports, newest first.
func (s *Store) List(ctx context.Context) ([]ports.ArchivedReport, error) {
	root := s.getPath(archive.Prefix)
	var reports []ports.ArchivedReport
	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return iofs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		reports = append(reports, ports.ArchivedReport{
			Key:         key,
			Name:        archive.NameFromKey(key),
			ContentType: archive.ContentType(key),
			Size:        info.Size(),
			CreatedAt:   info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list archived reports: %w", err)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (s *Store) getPath(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}
