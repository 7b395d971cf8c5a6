package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ivnamo/isoVisor/internal/adapters/memory"
	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/ports"
)

func memoryFactory(ctx context.Context) (ports.RecordStore, error) {
	return memory.NewStore(), nil
}

func TestRegistry_ResolveReusesLiveSession(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(memoryFactory, time.Hour, nil)

	first, created, err := r.Resolve(ctx, "")
	if err != nil || !created {
		t.Fatalf("Resolve = %v, %v", created, err)
	}
	if err := first.Store.Append(ctx, []domain.FlatRow{{TrialID: "A"}}); err != nil {
		t.Fatal(err)
	}

	again, created, err := r.Resolve(ctx, first.ID)
	if err != nil || created {
		t.Fatalf("expected existing session, created=%v err=%v", created, err)
	}
	if again != first {
		t.Error("expected the same entry")
	}

	other, created, _ := r.Resolve(ctx, "unknown")
	if !created || other.ID == first.ID {
		t.Error("unknown id should open a separate session")
	}
	if n, _ := other.Store.Count(ctx); n != 0 {
		t.Errorf("new session should start empty, got %d rows", n)
	}
}

func TestRegistry_ExpiryAndSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	r := NewRegistry(memoryFactory, time.Hour, nil)
	r.now = func() time.Time { return now }

	e, _, _ := r.Resolve(ctx, "")
	now = now.Add(2 * time.Hour)

	if _, created, _ := r.Resolve(ctx, e.ID); !created {
		t.Error("expired session should be replaced")
	}
	if n := r.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d sessions, want 1", n)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistry_FactoryError(t *testing.T) {
	r := NewRegistry(func(ctx context.Context) (ports.RecordStore, error) {
		return nil, errors.New("disk full")
	}, time.Hour, nil)
	if _, _, err := r.Resolve(context.Background(), ""); err == nil {
		t.Error("expected factory error")
	}
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry(memoryFactory, time.Hour, nil)
	_, _, _ = r.Resolve(context.Background(), "")
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len after Close = %d", r.Len())
	}
}
