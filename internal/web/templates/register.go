package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// RegisterPage is the data entry page: import, trial form, checklist and table.
func RegisterPage(v RegisterView) templ.Component {
	return Layout("Registro", "register", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.component(ctx, FlashMessage(v.Flash))

		h.raw(`<section><h2>Opcional: cargar BBDD existente (CSV)</h2>`)
		h.component(ctx, ImportForm("/", "Sube un CSV previo (estructura F10-02) para continuar añadiendo ensayos"))
		h.raw(`<p><em>Si no subes nada, se empieza con una BBDD vacía (en esta sesión).</em></p></section>`)

		f := v.Form
		h.raw(`<form method="post" action="/trials">`)

		h.raw(`<section><h2>1. Datos de partida del diseño (F10-02 · 1)</h2><div class="grid">`)
		textInput(h, "responsible", "Responsable de proyecto", f.Responsible)
		textInput(h, "request_id", "Nº Solicitud", f.RequestID)
		h.raw(`<div><label for="request_type">Tipo</label><select id="request_type" name="request_type">`)
		for _, t := range v.RequestTypes {
			option(h, string(t), requestTypeLabel(t), f.RequestType == t)
		}
		h.raw(`</select></div>`)
		textInput(h, "base_product", "Producto / línea", f.BaseProduct)
		h.raw(`</div>`)
		textArea(h, "design_description", "Descripción de los datos de partida del diseño", f.DesignDescription, 4)
		h.raw(`</section>`)

		h.raw(`<section><h2>2. Ensayo / formulación (F10-02 · 2)</h2><div class="grid">`)
		textInput(h, "trial_id", "ID ensayo", f.TrialID)
		textInput(h, "formulation_name", "Nombre formulación", f.FormulationName)
		h.raw(`<div><label for="trial_date">Fecha ensayo</label><input id="trial_date" type="date" name="trial_date"`)
		h.attr("value", f.TrialDate)
		h.raw(`></div><div><label for="result">Resultado</label><select id="result" name="result">`)
		for _, r := range v.Results {
			option(h, string(r), string(r), f.Result == r)
		}
		h.raw(`</select></div></div>`)
		textArea(h, "comment", "Motivo / comentario (NOK, observaciones)", f.Comment, 3)
		h.raw(`<label for="recipe">Receta del ensayo (pegar desde Excel): cada línea materia prima + % peso (tabulado, punto y coma o espacio)</label>`)
		h.raw(`<textarea id="recipe" name="recipe" rows="6" hx-post="/api/recipe/preview" hx-trigger="keyup changed delay:400ms, change" hx-target="#recipe-preview" hx-swap="outerHTML">`)
		h.text(f.RecipeText)
		h.raw(`</textarea><div id="recipe-preview"></div></section>`)

		h.raw(`<section><h2>3. Verificación (F10-02 · 3)</h2><div class="grid">`)
		textInput(h, "final_product", "Producto final", f.FinalProduct)
		textInput(h, "formula_ok", "Fórmula OK (ref. ensayo / versión)", f.FormulaOKRef)
		textInput(h, "strengths", "Riquezas (garantías, NPK, micro...)", f.DeclaredStrengths)
		h.raw(`</div></section>`)

		h.raw(`<section><h2>4. Anexo: especificación de producto</h2>`)
		textArea(h, "spec_description", "Descripción", f.Spec.Description, 2)
		h.raw(`<div class="grid">`)
		textInput(h, "spec_appearance", "Aspecto", f.Spec.Appearance)
		textInput(h, "spec_color", "Color", f.Spec.Color)
		textInput(h, "spec_density", "Densidad", f.Spec.Density)
		textInput(h, "spec_ph", "pH", f.Spec.PH)
		h.raw(`</div>`)
		textArea(h, "spec_chemistry", "Composición química (una línea por parámetro)", f.Spec.Chemistry, 4)
		h.raw(`</section>`)

		h.raw(`<section><h2>5. Validación (F10-03)</h2>`)
		h.raw(`<label><input type="checkbox" name="validation_enabled" value="1"`)
		if f.Checklist != nil || f.TrialID == "" {
			h.raw(` checked`)
		}
		h.raw(`> Registrar checklist de validación con este ensayo</label>`)
		h.raw(`<div class="grid"><div><label for="validation_date">Fecha de validación</label><input id="validation_date" type="date" name="validation_date"`)
		h.attr("value", f.ValidationDate)
		h.raw(`></div></div>`)
		checklistForm(h, v.Checklist)
		h.raw(`</section>`)

		h.raw(`<section><button type="submit">➕ Añadir ensayo al registro F10-02</button></section></form>`)

		h.raw(`<section><h2>Tabla BBDD F10-02 (toda la sesión)</h2>`)
		h.component(ctx, Table(v.Table))
		h.raw(`<div class="actions"><form method="post" action="/table/clear" hx-confirm="¿Borrar TODA la BBDD de esta sesión?">`)
		h.raw(`<button type="submit">🗑️ Borrar TODA la BBDD de esta sesión</button></form>`)
		if v.Table.Total > 0 {
			h.raw(`<form method="get" action="/table/export" hx-boost="false" class="actions"><div><label for="filename">Nombre del fichero</label>`)
			h.raw(`<input id="filename" type="text" name="filename"`)
			h.attr("value", v.DumpName)
			h.raw(`></div><button type="submit">📥 Descargar BBDD F10-02 (CSV)</button></form>`)
		}
		h.raw(`</div></section>`)
		return h.err
	}))
}

// RecipePreview shows how the pasted recipe will be split.
func RecipePreview(v RecipePreviewView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div id="recipe-preview">`)
		switch {
		case v.Empty:
		case len(v.Lines) == 0:
			h.raw(`<p class="nok">No se han encontrado líneas válidas (materia prima + %).</p>`)
		default:
			h.rawf(`<p>%d líneas detectadas</p><table><thead><tr><th>Materia prima</th><th>%% peso</th></tr></thead><tbody>`, len(v.Lines))
			for _, l := range v.Lines {
				h.raw(`<tr><td>`)
				h.text(l.Ingredient)
				h.raw(`</td><td>`)
				h.text(l.Percentage)
				h.raw(`</td></tr>`)
			}
			h.raw(`</tbody></table>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

func checklistForm(h *html, items []domain.ChecklistItem) {
	h.rawf(`<input type="hidden" name="check_rows" value="%d">`, len(items))
	h.raw(`<table><thead><tr><th>Área</th><th>Aspecto</th><th>OK</th><th>Comentarios</th></tr></thead><tbody>`)
	for i, it := range items {
		h.raw(`<tr><td>`)
		h.text(it.Area)
		hidden(h, fmt.Sprintf("check_area_%d", i), it.Area)
		h.raw(`</td><td>`)
		h.text(it.Aspect)
		hidden(h, fmt.Sprintf("check_aspect_%d", i), it.Aspect)
		h.raw(`</td><td><input type="checkbox" value="1"`)
		h.attr("name", fmt.Sprintf("check_passed_%d", i))
		if it.Passed {
			h.raw(` checked`)
		}
		h.raw(`></td><td><input type="text"`)
		h.attr("name", fmt.Sprintf("check_comments_%d", i))
		h.attr("value", it.Comments)
		h.raw(`></td></tr>`)
	}
	h.raw(`</tbody></table>`)
}

func requestTypeLabel(t domain.RequestType) string {
	switch t {
	case domain.RequestInternal:
		return "Interno"
	case domain.RequestClient:
		return "Cliente"
	}
	return string(t)
}

func textInput(h *html, name, label, value string) {
	h.raw(`<div><label`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(label)
	h.raw(`</label><input type="text"`)
	h.attr("id", name)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(`></div>`)
}

func textArea(h *html, name, label, value string, rows int) {
	h.raw(`<label`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(label)
	h.raw(`</label><textarea`)
	h.attr("id", name)
	h.attr("name", name)
	h.rawf(` rows="%d">`, rows)
	h.text(value)
	h.raw(`</textarea>`)
}

func option(h *html, value, label string, selected bool) {
	h.raw(`<option`)
	h.attr("value", value)
	if selected {
		h.raw(` selected`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</option>`)
}

func hidden(h *html, name, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(`>`)
}
