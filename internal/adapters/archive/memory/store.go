// Package memory keeps archived reports in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ivnamo/isoVisor/internal/adapters/archive"
	"github.com/ivnamo/isoVisor/internal/ports"
)

type object struct {
	report ports.ArchivedReport
	data   []byte
}

type Store struct {
	mu      sync.RWMutex
	objects []object
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Put(ctx context.Context, name string, data []byte, contentType string) (ports.ArchivedReport, error) {
	now := time.Now()
	key := archive.NewKey(now, name)
	if contentType == "" {
		contentType = archive.ContentType(name)
	}
	r := ports.ArchivedReport{
		Key:         key,
		Name:        archive.NameFromKey(key),
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, object{report: r, data: append([]byte(nil), data...)})
	return r, nil
}

// List returns the archived reports, newest first.
func (s *Store) List(ctx context.Context) ([]ports.ArchivedReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.ArchivedReport, 0, len(s.objects))
	for i := len(s.objects) - 1; i >= 0; i-- {
		out = append(out, s.objects[i].report)
	}
	return out, nil
}

// Data returns a copy of the stored bytes of key.
func (s *Store) Data(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.objects {
		if o.report.Key == key {
			return append([]byte(nil), o.data...), true
		}
	}
	return nil, false
}
