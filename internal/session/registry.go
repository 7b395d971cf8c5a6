// Package session keeps one flat table per browser session.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/ports"
)

// StoreFactory opens an empty table for a new session.
type StoreFactory func(ctx context.Context) (ports.RecordStore, error)

// Entry is one live session. Callers hold Lock while they run a user action
// so actions on the same table never interleave.
type Entry struct {
	ID    string
	Store ports.RecordStore

	mu       sync.Mutex
	lastSeen time.Time
}

func (e *Entry) Lock()   { e.mu.Lock() }
func (e *Entry) Unlock() { e.mu.Unlock() }

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Entry
	factory  StoreFactory
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewRegistry(factory StoreFactory, ttl time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Entry),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Resolve returns the live session id, or a new session when id is unknown or
// expired. created reports whether a new session was opened.
func (r *Registry) Resolve(ctx context.Context, id string) (e *Entry, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.sessions[id]; ok && now.Sub(e.lastSeen) < r.ttl {
		e.lastSeen = now
		return e, false, nil
	}

	store, err := r.factory(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("opening session table: %w", err)
	}
	e = &Entry{ID: uuid.NewString(), Store: store, lastSeen: now}
	r.sessions[e.ID] = e
	r.logger.Debug("session opened", zap.String("session", e.ID))
	return e, true, nil
}

// Len is the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and closes their tables.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	now := r.now()
	var expired []*Entry
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) >= r.ttl {
			expired = append(expired, e)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		e.Lock()
		if err := e.Store.Close(); err != nil {
			r.logger.Warn("closing expired session table", zap.String("session", e.ID), zap.Error(err))
		}
		e.Unlock()
		r.logger.Debug("session expired", zap.String("session", e.ID))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("expired sessions swept", zap.Int("count", n))
			}
		}
	}
}

// Close closes every session table.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for id, e := range r.sessions {
		if err := e.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.sessions, id)
	}
	return firstErr
}
