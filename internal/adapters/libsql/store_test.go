package libsql_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivnamo/isoVisor/internal/domain"
)

func sampleRows() []domain.FlatRow {
	base := domain.FlatRow{
		Responsible:       "Ana",
		RequestID:         "120",
		RequestType:       domain.RequestClient,
		BaseProduct:       "Bioestimulante",
		DesignDescription: "Línea 1\nLínea 2",
		TrialID:           "E1",
		FormulationName:   "F-A",
		TrialDate:         "2024-05-02",
		Result:            domain.ResultOK,
		Comment:           "estable; sin precipitado",
		Spec:              domain.Specification{Density: "1,25", PH: "6,5", Chemistry: "N 5%\nK2O 3%"},
		Validation:        domain.NewChecklist([]domain.ChecklistItem{{Area: "Producto", Aspect: "pH", Passed: true}}),
		ValidationDate:    "2024-06-01",
	}
	a, b := base, base
	a.RawMaterial, a.WeightPct = "Agua", "86,46"
	b.RawMaterial, b.WeightPct = "ALANTOINA", "0,50"
	return []domain.FlatRow{a, b}
}

func TestStore_AppendAndAll(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rows, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}

	want := sampleRows()
	if err := s.Append(ctx, want); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	extra := domain.FlatRow{RequestID: "7", TrialID: "X", RawMaterial: "Urea", WeightPct: "10"}
	if err := s.Append(ctx, []domain.FlatRow{extra}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	want = append(want, extra)

	got, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows, got %d", n)
	}
}

func TestStore_ReplaceAndClear(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, sampleRows()); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	replacement := []domain.FlatRow{{RequestID: "9", TrialID: "Z", RawMaterial: "KOH", WeightPct: "1"}}
	if err := s.Replace(ctx, replacement); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	got, _ := s.All(ctx)
	if diff := cmp.Diff(replacement, got); diff != "" {
		t.Errorf("rows after replace mismatch (-want +got):\n%s", diff)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("expected 0 rows after clear, got %d", n)
	}
}

func TestStore_UndecodableChecklistRoundTrips(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	row := domain.FlatRow{RequestID: "1", TrialID: "T", RawMaterial: "A", WeightPct: "1", Validation: domain.ParseChecklist("{broken")}
	if err := s.Append(ctx, []domain.FlatRow{row}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	got, _ := s.All(ctx)
	if got[0].Validation.Raw != "{broken" {
		t.Errorf("expected raw payload preserved, got %+v", got[0].Validation)
	}
}
