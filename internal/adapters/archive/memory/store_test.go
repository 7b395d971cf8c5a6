package memory

import (
	"context"
	"testing"
)

func TestStore_PutListData(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first, err := s.Put(ctx, "a.csv", []byte("one"), "")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	second, _ := s.Put(ctx, "b.xlsx", []byte("two"), "")

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].Key != second.Key || list[1].Key != first.Key {
		t.Errorf("expected newest first, got %+v", list)
	}
	if first.ContentType != "text/csv" || first.Size != 3 {
		t.Errorf("unexpected report %+v", first)
	}

	data, ok := s.Data(first.Key)
	if !ok || string(data) != "one" {
		t.Errorf("Data = %q, %v", data, ok)
	}
	if _, ok := s.Data("missing"); ok {
		t.Error("Data should miss unknown keys")
	}
}
