package fs

import (
	"context"
	"os"
	"testing"
)

func TestStore_PutAndList(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := s.Put(ctx, "Informe_12.csv", []byte("a;b"), "")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got.Name != "Informe_12.csv" || got.Size != 3 || got.ContentType != "text/csv" {
		t.Errorf("unexpected report: %+v", got)
	}

	data, err := os.ReadFile(s.getPath(got.Key))
	if err != nil || string(data) != "a;b" {
		t.Errorf("stored data = %q, %v", data, err)
	}

	if _, err := s.Put(ctx, "Informe_ISO_todas_solicitudes.xlsx", []byte("xlsx"), "application/zip"); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(list))
	}
}

func TestStore_ListEmpty(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	list, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty archive, got %d", len(list))
	}
}

func TestNewStore_RequiresDirectory(t *testing.T) {
	if _, err := NewStore(""); err == nil {
		t.Error("expected error for empty directory")
	}
}
