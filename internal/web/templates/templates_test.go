package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/records"
	"github.com/ivnamo/isoVisor/internal/trials"
)

func TestViewerPage_EscapesContent(t *testing.T) {
	var buf bytes.Buffer
	v := ViewerView{
		Requests: []string{"12"},
		Selected: "12",
		Meta:     domain.RequestMetadata{Responsible: `<script>alert("x")</script>`},
		Trials: trials.Set{{
			Key: "E-1||F1", ID: "E-1", FormulationName: "F1", Result: domain.ResultOK,
			Ingredients: []domain.Ingredient{{RawMaterial: "A&B", WeightPct: "10"}},
		}},
		Checklist: ChecklistView{Items: []domain.ChecklistItem{{Area: "Producto", Aspect: "pH", Passed: true}}},
		Encodings: []string{"utf-8-bom", "utf-8"},
		Encoding:  "utf-8",
	}
	if err := ViewerPage(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "<script>alert") {
		t.Error("metadata was not escaped")
	}
	for _, want := range []string{
		"&lt;script&gt;",
		"A&amp;B",
		`Ensayo 1: E-1 · F1 (<span class="ok">OK</span>)`,
		`<option value="utf-8" selected>`,
		`<td class="ok">OK</td>`,
		`<a href="/viewer" class="active">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestChecklistSection_States(t *testing.T) {
	tests := []struct {
		name string
		view ChecklistView
		want string
	}{
		{"missing", ChecklistView{Missing: true}, "Sin checklist de validación registrado."},
		{"broken", ChecklistView{Error: "unexpected end"}, "Error al leer el checklist de validación: unexpected end"},
		{"pending item", ChecklistView{Items: []domain.ChecklistItem{{Area: "Envase"}}}, `<td class="nok">NOK/Pendiente</td>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &html{w: &buf}
			checklistSection(h, "2024-06-01", tt.view)
			if h.err != nil {
				t.Fatal(h.err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("got %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRegisterPage_ChecklistFields(t *testing.T) {
	var buf bytes.Buffer
	v := RegisterView{
		Checklist:    domain.DefaultChecklist(),
		RequestTypes: []domain.RequestType{domain.RequestInternal, domain.RequestClient},
		Results:      []domain.Result{domain.ResultOK, domain.ResultNOK},
		Form:         records.Submission{RequestType: domain.RequestClient, Result: domain.ResultOK},
	}
	if err := RegisterPage(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`name="check_rows" value="9"`,
		`name="check_area_8"`,
		`<option value="Client" selected>Cliente</option>`,
		`<textarea id="recipe" name="recipe"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}
