package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// ViewerPage lists the requests of the session table and shows the report
// of the selected one.
func ViewerPage(v ViewerView) templ.Component {
	return Layout("Visor", "viewer", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.component(ctx, FlashMessage(v.Flash))

		h.raw(`<section><h2>Cargar BBDD F10-02</h2>`)
		h.component(ctx, ImportForm("/viewer", "Sube el CSV de la BBDD F10-02 para revisar las solicitudes"))
		h.raw(`</section>`)

		if len(v.Requests) == 0 {
			h.raw(`<section><p>La BBDD de esta sesión está vacía. Carga un CSV o registra ensayos primero.</p></section>`)
			return h.err
		}

		h.raw(`<section><form method="get" action="/viewer" class="actions"><div><label for="request">Selecciona Nº de solicitud</label>`)
		h.raw(`<select id="request" name="request" onchange="this.form.requestSubmit()">`)
		for _, id := range v.Requests {
			option(h, id, id, id == v.Selected)
		}
		h.raw(`</select></div><button type="submit">Ver</button>`)
		h.raw(`<a hx-boost="false" href="/reports/xlsx">📘 Descargar informe ISO (Excel, todas las solicitudes)</a></form></section>`)

		if v.Selected == "" {
			return h.err
		}
		m := v.Meta

		h.raw(`<section><h2>1. Datos de partida del diseño</h2><div class="grid">`)
		field(h, "Responsable", m.Responsible)
		field(h, "Nº Solicitud", v.Selected)
		field(h, "Tipo", string(m.RequestType))
		field(h, "Producto / línea", m.BaseProduct)
		h.raw(`</div>`)
		paragraph(h, m.DesignDescription)
		h.raw(`</section>`)

		h.raw(`<section><h2>2. Ensayos / formulaciones</h2>`)
		if len(v.Trials) == 0 {
			h.raw(`<p>No hay ensayos registrados para esta solicitud.</p>`)
		}
		for i, t := range v.Trials {
			h.raw(`<details`)
			if i == 0 {
				h.raw(` open`)
			}
			h.rawf(`><summary>Ensayo %d: `, i+1)
			h.text(t.ID)
			h.raw(` · `)
			h.text(orDash(t.FormulationName))
			h.raw(` (<span`)
			h.attr("class", resultClass(t.Result))
			h.raw(`>`)
			h.text(orDash(string(t.Result)))
			h.raw(`</span>)</summary>`)
			h.raw(`<p>Fecha: `)
			h.text(orDash(t.Date))
			h.raw(`</p><table><thead><tr><th>Materia prima</th><th>% peso</th></tr></thead><tbody>`)
			for _, ing := range t.Ingredients {
				h.raw(`<tr><td>`)
				h.text(ing.RawMaterial)
				h.raw(`</td><td>`)
				h.text(ing.WeightPct)
				h.raw(`</td></tr>`)
			}
			h.raw(`</tbody></table>`)
			if t.Comment != "" {
				h.raw(`<p><strong>Motivo / comentario:</strong> `)
				h.text(t.Comment)
				h.raw(`</p>`)
			}
			h.raw(`</details>`)
		}
		h.raw(`</section>`)

		h.raw(`<section><h2>3. Verificación</h2><div class="grid">`)
		field(h, "Producto final", m.FinalProduct)
		field(h, "Fórmula OK", m.FormulaOKRef)
		field(h, "Riquezas", m.DeclaredStrengths)
		h.raw(`</div></section>`)

		specSection(h, m.Spec)
		checklistSection(h, m.ValidationDate, v.Checklist)

		h.raw(`<section><h2>Informe ISO</h2>`)
		h.raw(`<form method="get" action="/reports/csv" hx-boost="false" class="actions"><input type="hidden" name="request"`)
		h.attr("value", v.Selected)
		h.raw(`><div><label for="encoding">Codificación</label><select id="encoding" name="encoding">`)
		for _, e := range v.Encodings {
			option(h, e, e, e == v.Encoding)
		}
		h.raw(`</select></div><button type="submit">📄 Descargar informe ISO (CSV)</button></form></section>`)
		return h.err
	}))
}

func specSection(h *html, s domain.Specification) {
	h.raw(`<section><h2>4. Anexo: especificación de producto</h2>`)
	if s.IsZero() {
		h.raw(`<p>Sin especificación registrada.</p></section>`)
		return
	}
	paragraph(h, s.Description)
	h.raw(`<div class="grid">`)
	field(h, "Aspecto", s.Appearance)
	field(h, "Color", s.Color)
	field(h, "Densidad", s.Density)
	field(h, "pH", s.PH)
	h.raw(`</div>`)
	var lines []string
	for _, l := range strings.Split(s.Chemistry, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > 0 {
		h.raw(`<p><strong>Composición química</strong></p><ul>`)
		for _, l := range lines {
			h.raw(`<li>`)
			h.text(l)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	}
	h.raw(`</section>`)
}

func checklistSection(h *html, date string, c ChecklistView) {
	h.raw(`<section><h2>5. Validación (F10-03)</h2><p>Fecha de validación: `)
	h.text(orDash(date))
	h.raw(`</p>`)
	switch {
	case c.Error != "":
		h.raw(`<p class="nok">Error al leer el checklist de validación: `)
		h.text(c.Error)
		h.raw(`</p>`)
	case c.Missing:
		h.raw(`<p>Sin checklist de validación registrado.</p>`)
	default:
		h.raw(`<table><thead><tr><th>Área</th><th>Aspecto</th><th>Estado</th><th>Comentarios</th></tr></thead><tbody>`)
		for _, it := range c.Items {
			h.raw(`<tr><td>`)
			h.text(it.Area)
			h.raw(`</td><td>`)
			h.text(it.Aspect)
			h.raw(`</td><td`)
			if it.Passed {
				h.raw(` class="ok">`)
			} else {
				h.raw(` class="nok">`)
			}
			h.text(statusLabel(it.Passed))
			h.raw(`</td><td>`)
			h.text(it.Comments)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	}
	h.raw(`</section>`)
}

func field(h *html, label, value string) {
	h.raw(`<div><strong>`)
	h.text(label)
	h.raw(`:</strong> `)
	h.text(orDash(value))
	h.raw(`</div>`)
}

func paragraph(h *html, s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	h.raw(`<p style="white-space:pre-wrap">`)
	h.text(s)
	h.raw(`</p>`)
}
