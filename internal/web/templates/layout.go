package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const styles = `
body{font-family:system-ui,sans-serif;margin:0;color:#1f2933;background:#f5f7fa}
header{background:#243b53;color:#fff;padding:.75rem 1.5rem;display:flex;gap:1.5rem;align-items:center}
header a{color:#d9e2ec;text-decoration:none}header a.active{color:#fff;font-weight:600}
main{max-width:1200px;margin:0 auto;padding:1rem 1.5rem}
section{background:#fff;border-radius:6px;padding:1rem 1.25rem;margin-bottom:1rem;box-shadow:0 1px 2px rgba(0,0,0,.08)}
h2{font-size:1.1rem;margin-top:0}label{display:block;font-size:.85rem;margin:.4rem 0 .15rem}
input[type=text],input[type=date],select,textarea{width:100%;box-sizing:border-box;padding:.35rem}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(220px,1fr));gap:.75rem}
table{border-collapse:collapse;width:100%;font-size:.85rem}th,td{border:1px solid #d9e2ec;padding:.25rem .4rem;text-align:left;vertical-align:top}
.scroll{overflow:auto;max-height:320px}
.flash{padding:.6rem 1rem;border-radius:4px;margin-bottom:1rem}
.flash.success{background:#e3f9e5}.flash.error{background:#ffe3e3}.flash.info{background:#e6f6ff}.flash.warning{background:#fff3c4}
.ok{color:#207227;font-weight:600}.nok{color:#ab091e;font-weight:600}
button{padding:.45rem .9rem;cursor:pointer}.actions{display:flex;gap:.75rem;flex-wrap:wrap;align-items:end}
details{border:1px solid #d9e2ec;border-radius:4px;padding:.4rem .75rem;margin-bottom:.5rem}
`

// Layout wraps a page body with the common head and navigation.
func Layout(title, active string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` · isoVisor</title><style>` + styles + `</style>`)
		h.raw(`<script src="https://unpkg.com/htmx.org@1.9.12" crossorigin="anonymous"></script>`)
		h.raw(`</head><body hx-boost="true"><header><strong>isoVisor · F10-02 / F10-03</strong>`)
		navLink(h, "/", "Registro de ensayos", active == "register")
		navLink(h, "/viewer", "Visor e informes", active == "viewer")
		h.raw(`</header><main>`)
		h.component(ctx, body)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

func navLink(h *html, href, label string, active bool) {
	h.raw(`<a`)
	h.attr("href", href)
	if active {
		h.raw(` class="active"`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</a>`)
}

// FlashMessage renders f, or nothing when f is nil.
func FlashMessage(f *Flash) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div id="flash">`)
		if f != nil {
			h.raw(`<div`)
			h.attr("class", "flash "+f.Kind)
			h.raw(` role="status">`)
			h.text(f.Message)
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// Table renders the flat table preview.
func Table(p TablePreview) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div id="table-preview">`)
		if p.Total == 0 {
			h.raw(`<p>No hay datos en la BBDD de esta sesión.</p></div>`)
			return h.err
		}
		h.rawf(`<p>%d filas`, p.Total)
		if len(p.Rows) < p.Total {
			h.rawf(` (mostrando las primeras %d)`, len(p.Rows))
		}
		h.raw(`</p><div class="scroll"><table><thead><tr>`)
		for _, c := range p.Columns {
			h.raw(`<th>`)
			h.text(c)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, r := range p.Rows {
			h.raw(`<tr>`)
			for _, v := range r {
				h.raw(`<td>`)
				h.text(v)
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table></div></div>`)
		return h.err
	})
}

// ImportForm uploads a delimited table; next is the page to show afterwards.
func ImportForm(next, hint string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<form method="post" action="/table/import" enctype="multipart/form-data" class="actions">`)
		h.raw(`<input type="hidden" name="next"`)
		h.attr("value", next)
		h.raw(`><div><label for="table-file">`)
		h.text(hint)
		h.raw(`</label><input id="table-file" type="file" name="file" accept=".csv,.txt,text/csv" required></div>`)
		h.raw(`<button type="submit">Cargar CSV en BBDD actual</button></form>`)
		return h.err
	})
}
