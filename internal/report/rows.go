// Package report assembles the per-request ISO report and renders it as
// delimited text or as a multi-sheet workbook.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/trials"
)

// Row is one report line. Rows are ragged: each has as many cells as it needs.
type Row []string

// ErrUnknownRequest is returned when a request id has no rows in the table.
var ErrUnknownRequest = errors.New("no rows for request")

// Labels of the validation status column.
const (
	StatusPassed  = "OK"
	StatusPending = "NOK/Pendiente"
)

const (
	noChecklistRow  = "(sin checklist de validación registrado)"
	badChecklistRow = "Error al leer el checklist de validación:"
)

// ForRequest groups the rows of requestID and builds its report.
func ForRequest(rows []domain.FlatRow, requestID string) ([]Row, error) {
	meta, ok := trials.Metadata(rows, requestID)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRequest, requestID)
	}
	return BuildRows(meta, trials.Group(rows, requestID)), nil
}

// BuildRows lays out the report sections in their fixed order: header, design
// starting data, trials, verification, specification annex and validation.
// A missing or unreadable checklist yields a single notice row in the
// validation section.
func BuildRows(meta domain.RequestMetadata, set trials.Set) []Row {
	rows := []Row{
		{"Responsable de proyecto:", meta.Responsible},
		{"Nº Solicitud:", meta.RequestID, "Tipo:", string(meta.RequestType)},
		{"Producto base / línea:", meta.BaseProduct},
		{},
		{"1. DATOS DE PARTIDA DEL DISEÑO"},
		{meta.DesignDescription},
		{},
		{"2. ENSAYOS / FORMULACIONES"},
		{},
	}

	for i, t := range set {
		rows = append(rows,
			Row{fmt.Sprintf("Ensayo %d", i+1), t.ID, t.FormulationName},
			Row{"Fecha ensayo:", t.Date, "Resultado:", string(t.Result)},
			Row{},
			Row{"Materia prima", "% peso"},
		)
		for _, in := range t.Ingredients {
			rows = append(rows, Row{in.RawMaterial, in.WeightPct})
		}
		rows = append(rows,
			Row{},
			Row{"Motivo / comentario:", t.Comment},
			Row{},
			Row{},
		)
	}

	rows = append(rows,
		Row{"3. VERIFICACIÓN"},
		Row{"Producto final:", meta.FinalProduct},
		Row{"Fórmula OK:", meta.FormulaOKRef},
		Row{"Riquezas:", meta.DeclaredStrengths},
		Row{},
	)
	rows = append(rows, specificationRows(meta.Spec)...)
	rows = append(rows, validationRows(meta)...)
	return rows
}

func specificationRows(s domain.Specification) []Row {
	rows := []Row{
		{"4. ANEXO: ESPECIFICACIÓN DE PRODUCTO"},
		{"Descripción:", s.Description},
		{},
		{"Propiedades físicas"},
		{"Aspecto:", s.Appearance, "Color:", s.Color},
		{"Densidad:", s.Density, "pH:", s.PH},
		{},
		{"Composición química"},
	}
	for _, line := range splitLines(s.Chemistry) {
		rows = append(rows, Row{line})
	}
	return append(rows, Row{})
}

func validationRows(meta domain.RequestMetadata) []Row {
	rows := []Row{
		{"5. VALIDACIÓN (F10-03)"},
		{"Fecha de validación:", meta.ValidationDate},
		{},
		{"Área", "Aspecto", "Estado", "Comentarios"},
	}

	items, err := meta.Validation.Decode()
	switch {
	case errors.Is(err, domain.ErrNoChecklist):
		return append(rows, Row{noChecklistRow})
	case err != nil:
		return append(rows, Row{badChecklistRow, err.Error()})
	}

	for _, it := range items {
		status := StatusPending
		if it.Passed {
			status = StatusPassed
		}
		rows = append(rows, Row{it.Area, it.Aspect, status, it.Comments})
	}
	return rows
}

// splitLines returns the non-blank trimmed lines of s.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := make([]string, 0)
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Pad returns a copy of rows where every row has the width of the widest one.
func Pad(rows []Row) []Row {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		padded := make(Row, width)
		copy(padded, r)
		out[i] = padded
	}
	return out
}
