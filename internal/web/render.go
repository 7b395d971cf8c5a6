package web

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/exports"
	"github.com/ivnamo/isoVisor/internal/ports"
	"github.com/ivnamo/isoVisor/internal/web/templates"
)

// previewRows caps the table shown on the pages.
const previewRows = 50

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		s.logger.Error("rendering page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// failStatus keeps htmx requests at 200 so the error flash gets swapped in.
func failStatus(r *http.Request, code int) int {
	if r.Header.Get("HX-Request") == "true" {
		return http.StatusOK
	}
	return code
}

func attachment(w http.ResponseWriter, f exports.File) {
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	_, _ = w.Write(f.Data)
}

func tablePreview(ctx context.Context, store ports.RecordStore) (templates.TablePreview, error) {
	rows, err := store.All(ctx)
	if err != nil {
		return templates.TablePreview{}, err
	}
	p := templates.TablePreview{
		Columns: make([]string, len(domain.Columns)),
		Total:   len(rows),
	}
	for i, c := range domain.Columns {
		p.Columns[i] = string(c)
	}
	if len(rows) > previewRows {
		rows = rows[:previewRows]
	}
	p.Rows = make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(domain.Columns))
		for j, c := range domain.Columns {
			cells[j] = row.Field(c)
		}
		p.Rows[i] = cells
	}
	return p, nil
}

func flash(kind, msg string) *templates.Flash {
	return &templates.Flash{Kind: kind, Message: msg}
}
