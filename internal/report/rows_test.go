package report

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/trials"
)

func sampleTable() []domain.FlatRow {
	base := domain.FlatRow{
		Responsible:       "Ana",
		RequestID:         "12",
		RequestType:       domain.RequestClient,
		BaseProduct:       "Bioestimulante",
		DesignDescription: "Nueva línea foliar",
		FinalProduct:      "FOLIAR 5",
		FormulaOKRef:      "E-2 v2",
		DeclaredStrengths: "N 5%",
		Spec: domain.Specification{
			Description: "Líquido soluble",
			Appearance:  "Líquido",
			Color:       "Verde",
			Density:     "1,20",
			PH:          "6,5",
			Chemistry:   "N total 5%\r\n\r\nK2O 3%",
		},
		Validation: domain.NewChecklist([]domain.ChecklistItem{
			{Area: "Producto", Aspect: "pH", Passed: true, Comments: "ok"},
			{Area: "Envase", Aspect: "Fugas"},
		}),
		ValidationDate: "2024-06-01",
	}
	var rows []domain.FlatRow
	add := func(id, name, date string, res domain.Result, comment string, ings ...string) {
		for i := 0; i < len(ings); i += 2 {
			r := base
			r.TrialID, r.FormulationName, r.TrialDate = id, name, date
			r.Result, r.Comment = res, comment
			r.RawMaterial, r.WeightPct = ings[i], ings[i+1]
			rows = append(rows, r)
		}
	}
	add("E-2", "v2", "2024-05-02", domain.ResultOK, "", "Agua", "60", "Urea", "40")
	add("E-1", "v1", "2024-05-01", domain.ResultNOK, "precipita", "Agua", "70")
	return rows
}

func TestBuildRows_Layout(t *testing.T) {
	rows, err := ForRequest(sampleTable(), "12")
	if err != nil {
		t.Fatalf("ForRequest failed: %v", err)
	}

	wantPrefix := []Row{
		{"Responsable de proyecto:", "Ana"},
		{"Nº Solicitud:", "12", "Tipo:", "Client"},
		{"Producto base / línea:", "Bioestimulante"},
		{},
		{"1. DATOS DE PARTIDA DEL DISEÑO"},
		{"Nueva línea foliar"},
		{},
		{"2. ENSAYOS / FORMULACIONES"},
		{},
		{"Ensayo 1", "E-1", "v1"},
		{"Fecha ensayo:", "2024-05-01", "Resultado:", "NOK"},
		{},
		{"Materia prima", "% peso"},
		{"Agua", "70"},
		{},
		{"Motivo / comentario:", "precipita"},
		{},
		{},
		{"Ensayo 2", "E-2", "v2"},
	}
	if diff := cmp.Diff(wantPrefix, rows[:len(wantPrefix)]); diff != "" {
		t.Errorf("report prefix mismatch (-want +got):\n%s", diff)
	}

	wantTail := []Row{
		{"Composición química"},
		{"N total 5%"},
		{"K2O 3%"},
		{},
		{"5. VALIDACIÓN (F10-03)"},
		{"Fecha de validación:", "2024-06-01"},
		{},
		{"Área", "Aspecto", "Estado", "Comentarios"},
		{"Producto", "pH", StatusPassed, "ok"},
		{"Envase", "Fugas", StatusPending, ""},
	}
	if diff := cmp.Diff(wantTail, rows[len(rows)-len(wantTail):]); diff != "" {
		t.Errorf("report tail mismatch (-want +got):\n%s", diff)
	}

	if !containsRow(rows, Row{"Densidad:", "1,20", "pH:", "6,5"}) {
		t.Error("physical properties block missing density/pH row")
	}
	if !containsRow(rows, Row{"Riquezas:", "N 5%"}) {
		t.Error("verification section missing strengths")
	}
}

func TestBuildRows_ChecklistFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		checklist domain.Checklist
		wantFirst string
	}{
		{"absent", domain.Checklist{}, noChecklistRow},
		{"undecodable", domain.ParseChecklist("{broken"), badChecklistRow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := domain.RequestMetadata{RequestID: "1", Validation: tt.checklist}
			rows := BuildRows(meta, trials.Set{})
			last := rows[len(rows)-1]
			if last[0] != tt.wantFirst {
				t.Errorf("last row = %q, want first cell %q", last, tt.wantFirst)
			}
			if !containsRow(rows, Row{"3. VERIFICACIÓN"}) {
				t.Error("report should still carry every section")
			}
		})
	}
}

func TestForRequest_Unknown(t *testing.T) {
	if _, err := ForRequest(sampleTable(), "99"); err == nil || !strings.Contains(err.Error(), "99") {
		t.Errorf("expected unknown request error, got %v", err)
	}
}

func TestPad(t *testing.T) {
	got := Pad([]Row{{"a"}, {}, {"a", "b", "c"}})
	for i, r := range got {
		if len(r) != 3 {
			t.Errorf("row %d width = %d, want 3", i, len(r))
		}
	}
	if got[0][0] != "a" || got[0][2] != "" {
		t.Errorf("unexpected padded row %q", got[0])
	}
}

func containsRow(rows []Row, want Row) bool {
	for _, r := range rows {
		if cmp.Equal(r, want) {
			return true
		}
	}
	return false
}
