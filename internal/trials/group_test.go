package trials

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/recipe"
	"github.com/ivnamo/isoVisor/internal/records"
)

func row(req, id, name, date, raw, pct string) domain.FlatRow {
	return domain.FlatRow{
		RequestID:       req,
		TrialID:         id,
		FormulationName: name,
		TrialDate:       date,
		Result:          domain.ResultOK,
		RawMaterial:     raw,
		WeightPct:       pct,
	}
}

func TestGroup_RoundTripFromBuilder(t *testing.T) {
	lines := recipe.Parse("M01 F3\t86,46\nALANTOINA\t0,50\nAgua\t13,04")
	rows, err := records.Build(records.Submission{
		RequestID:  "101",
		TrialID:    "E-1",
		TrialDate:  "2024-03-01",
		Result:     domain.ResultNOK,
		RecipeText: "ignored",
	}, lines)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	set := Group(rows, "101")
	if len(set) != 1 {
		t.Fatalf("expected 1 trial, got %d", len(set))
	}
	want := []domain.Ingredient{
		{RawMaterial: "M01 F3", WeightPct: "86,46"},
		{RawMaterial: "ALANTOINA", WeightPct: "0,50"},
		{RawMaterial: "Agua", WeightPct: "13,04"},
	}
	if diff := cmp.Diff(want, set[0].Ingredients); diff != "" {
		t.Errorf("ingredients mismatch (-want +got):\n%s", diff)
	}
	if set[0].Key != "E-1||" {
		t.Errorf("key = %q", set[0].Key)
	}
}

func TestGroup_Ordering(t *testing.T) {
	rows := []domain.FlatRow{
		row("7", "B", "x", "2024-05-02", "b1", "1"),
		row("7", "A", "y", "2024-05-02", "a1", "1"),
		row("7", "A", "x", "2024-05-02", "ax", "1"),
		row("7", "Z", "z", "not a date", "z1", "1"),
		row("7", "C", "c", "2024-01-10", "c1", "1"),
		row("8", "OTHER", "o", "2020-01-01", "o1", "1"),
	}

	got := Group(rows, "7").Keys()
	want := []string{"Z||z", "C||c", "A||x", "A||y", "B||x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_IngredientsKeepInsertionOrderWithinTrial(t *testing.T) {
	rows := []domain.FlatRow{
		row("1", "T", "n", "2024-01-01", "first", "1"),
		row("2", "X", "n", "2024-01-01", "noise", "1"),
		row("1", "T", "n", "2024-01-01", "second", "2"),
		row("1", "T", "n", "2024-01-01", "third", "3"),
	}
	set := Group(rows, "1")
	if len(set) != 1 {
		t.Fatalf("expected 1 trial, got %d", len(set))
	}
	var names []string
	for _, in := range set[0].Ingredients {
		names = append(names, in.RawMaterial)
	}
	if diff := cmp.Diff([]string{"first", "second", "third"}, names); diff != "" {
		t.Errorf("ingredient order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_Idempotent(t *testing.T) {
	rows := []domain.FlatRow{
		row("1", "B", "n", "2024-02-01", "b", "1"),
		row("1", "A", "n", "2024-01-01", "a", "1"),
		row("1", "A", "n", "2024-01-01", "a2", "2"),
	}
	first := Group(rows, "1")
	second := Group(rows, "1")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("grouping is not idempotent (-first +second):\n%s", diff)
	}
}

func TestGroup_DoesNotMutateInput(t *testing.T) {
	rows := []domain.FlatRow{
		row("1", "B", "n", "2024-02-01", "b", "1"),
		row("1", "A", "n", "2024-01-01", "a", "1"),
	}
	before := append([]domain.FlatRow(nil), rows...)
	Group(rows, "1")
	if diff := cmp.Diff(before, rows); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestGroup_NoRequestBucket(t *testing.T) {
	rows := []domain.FlatRow{
		row("", "A", "n", "", "a", "1"),
		row("  ", "A", "n", "", "b", "1"),
		row("3", "A", "n", "", "c", "1"),
	}
	set := Group(rows, domain.NoRequestID)
	if len(set) != 1 || len(set[0].Ingredients) != 2 {
		t.Fatalf("expected one trial with 2 ingredients, got %+v", set)
	}
}

func TestGroup_SplitsOnResultAndCommentAndSuffixesKeys(t *testing.T) {
	a := row("1", "T", "n", "2024-01-01", "a", "1")
	b := a
	b.RawMaterial = "b"
	b.Comment = "retest"

	set := Group([]domain.FlatRow{a, b}, "1")
	if diff := cmp.Diff([]string{"T||n", "T||n||2"}, set.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if set[1].Comment != "retest" {
		t.Errorf("second trial comment = %q, want retest", set[1].Comment)
	}
}

func TestGroup_UnknownRequestIsEmpty(t *testing.T) {
	set := Group([]domain.FlatRow{row("1", "A", "n", "", "a", "1")}, "2")
	if set == nil || len(set) != 0 {
		t.Errorf("expected empty non-nil set, got %#v", set)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in       string
		wantZero bool
	}{
		{"2024-03-01", false},
		{"2024-03-01 00:00:00", false},
		{"01/03/2024", false},
		{"", true},
		{"mañana", true},
	}
	for _, tt := range tests {
		if got := ParseDate(tt.in).IsZero(); got != tt.wantZero {
			t.Errorf("ParseDate(%q).IsZero() = %v, want %v", tt.in, got, tt.wantZero)
		}
	}
}
